/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"context"
	"errors"
	htmltemplate "html/template"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/nephroclinic/clinic/clinic"
	"github.com/nephroclinic/clinic/db"
	"github.com/nephroclinic/clinic/whatsapp"
)

const (
	dashboardBookingLimit = 100
	dashboardReviewLimit  = 50
	visitChartDays        = 7
)

var (
	countBookingsFn            = db.CountBookings
	listBookingsFn             = db.ListBookings
	updateBookingStatusFn      = db.UpdateBookingStatus
	getReviewStatsFn           = db.GetReviewStats
	listReviewsFn              = db.ListReviews
	approveReviewFn            = db.ApproveReview
	deleteReviewFn             = db.DeleteReview
	listNotificationsFn        = db.ListNotifications
	countUnreadNotificationsFn = db.CountUnreadNotifications
	markNotificationReadFn     = db.MarkNotificationRead
	deleteNotificationFn       = db.DeleteNotification
	countVisitsSinceFn         = db.CountVisitsSince
	dailyVisitsFn              = db.DailyVisits
	listReferenceRangesFn      = db.ListReferenceRanges
)

// bookingRow is a booking prepared for the dashboard table.
type bookingRow struct {
	db.Booking
	ClinicName  string
	WhatsAppURL string
}

func newBookingRows(bookings []db.Booking, phoneFilter string) []bookingRow {
	phoneFilter = strings.TrimSpace(phoneFilter)

	rows := make([]bookingRow, 0, len(bookings))
	for _, b := range bookings {
		if phoneFilter != "" && !whatsapp.PhoneMatches(b.PatientPhone, phoneFilter) {
			continue
		}

		name := b.ClinicID
		if location, ok := clinic.LocationByID(b.ClinicID); ok {
			name = location.Name
		}

		rows = append(rows, bookingRow{
			Booking:     b,
			ClinicName:  name,
			WhatsAppURL: whatsapp.DeepLink(b.PatientPhone, ""),
		})
	}

	return rows
}

// Dashboard renders the staff overview: stats, bookings, reviews and
// notifications.
func Dashboard(c flamego.Context, t template.Template, data template.Data) {
	ctx := c.Request().Context()
	cfg := currentConfig()
	now := nowFn()

	setPageTitle(data, "لوحة التحكم")
	data["IsDashboard"] = true
	data["BookingStatuses"] = []db.BookingStatus{db.BookingPending, db.BookingConfirmed, db.BookingCancelled}

	if count, err := countBookingsFn(ctx); err != nil {
		logger.Error("Error counting bookings", "error", err)
	} else {
		data["BookingCount"] = count
	}

	if count, err := countUnreadNotificationsFn(ctx); err != nil {
		logger.Error("Error counting notifications", "error", err)
	} else {
		data["UnreadCount"] = count
	}

	if stats, err := getReviewStatsFn(ctx); err != nil {
		logger.Error("Error fetching review stats", "error", err)
	} else {
		data["ReviewStats"] = stats
	}

	todayStart := db.StartOfDay(now, cfg.Location)

	if count, err := countVisitsSinceFn(ctx, todayStart); err != nil {
		logger.Error("Error counting visits", "error", err)
	} else {
		data["VisitsToday"] = count
	}

	if count, err := countVisitsSinceFn(ctx, weekStart(now, cfg.Location)); err != nil {
		logger.Error("Error counting visits", "error", err)
	} else {
		data["VisitsWeek"] = count
	}

	if series, err := dailyVisitsFn(ctx, visitChartDays, now, cfg.Location); err != nil {
		logger.Error("Error fetching daily visits", "error", err)
	} else if chart, err := generateVisitsChart(series); err != nil {
		logger.Error("Error rendering visits chart", "error", err)
	} else {
		data["VisitsChart"] = htmltemplate.HTML(chart) //nolint:gosec // Chart markup is generated from numeric visit counts.
	}

	phoneFilter := c.Query("phone")
	data["PhoneFilter"] = phoneFilter

	if bookings, err := listBookingsFn(ctx, dashboardBookingLimit); err != nil {
		logger.Error("Error fetching bookings", "error", err)
		data["Error"] = "تعذر تحميل الحجوزات"
	} else {
		data["Bookings"] = newBookingRows(bookings, phoneFilter)
	}

	if reviews, err := listReviewsFn(ctx, nil, dashboardReviewLimit); err != nil {
		logger.Error("Error fetching reviews", "error", err)
	} else {
		data["Reviews"] = reviews
	}

	if notifications, err := listNotificationsFn(ctx, db.DefaultNotificationLimit); err != nil {
		logger.Error("Error fetching notifications", "error", err)
	} else {
		data["Notifications"] = notifications
	}

	t.HTML(http.StatusOK, "dashboard")
}

func generateVisitsChart(series []db.DailyVisitCount) (string, error) {
	labels := make([]string, 0, len(series))
	values := make([]opts.BarData, 0, len(series))

	for _, day := range series {
		labels = append(labels, day.Day.Format("02/01"))
		values = append(values, opts.BarData{Value: day.Visits})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "320px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "زيارات آخر 7 أيام",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithColorsOpts(opts.Colors{"#7c3aed"}),
	)

	bar.SetXAxis(labels).AddSeries("الزيارات", values)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// UpdateBookingStatus confirms, cancels or reopens a booking.
func UpdateBookingStatus(c flamego.Context, s session.Session) {
	const back = "/dashboard#bookings"

	id := c.Param("id")

	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "تعذر قراءة البيانات")
		c.Redirect(back, http.StatusSeeOther)
		return
	}

	status := db.BookingStatus(strings.TrimSpace(c.Request().Form.Get("status")))
	if !status.Valid() {
		SetErrorFlash(s, "حالة غير صالحة")
		c.Redirect(back, http.StatusSeeOther)
		return
	}

	if err := updateBookingStatusFn(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, db.ErrBookingNotFound) {
			SetErrorFlash(s, "الحجز غير موجود")
		} else {
			logger.Error("Error updating booking status", "booking_id", id, "error", err)
			SetErrorFlash(s, "تعذر تحديث الحجز")
		}
		c.Redirect(back, http.StatusSeeOther)
		return
	}

	SetSuccessFlash(s, "تم تحديث حالة الحجز")
	c.Redirect(back, http.StatusSeeOther)
}

// ApproveReview publishes a pending review.
func ApproveReview(c flamego.Context, s session.Session) {
	runDashboardAction(c, s, "/dashboard#reviews", approveReviewFn, "تم نشر التقييم", "تعذر نشر التقييم")
}

// DeleteReview removes a review.
func DeleteReview(c flamego.Context, s session.Session) {
	runDashboardAction(c, s, "/dashboard#reviews", deleteReviewFn, "تم حذف التقييم", "تعذر حذف التقييم")
}

// MarkNotificationRead marks a notification as read.
func MarkNotificationRead(c flamego.Context, s session.Session) {
	runDashboardAction(c, s, "/dashboard#notifications", markNotificationReadFn, "", "تعذر تحديث الإشعار")
}

// DeleteNotification removes a notification.
func DeleteNotification(c flamego.Context, s session.Session) {
	runDashboardAction(c, s, "/dashboard#notifications", deleteNotificationFn, "تم حذف الإشعار", "تعذر حذف الإشعار")
}

func runDashboardAction(
	c flamego.Context,
	s session.Session,
	back string,
	action func(ctx context.Context, id string) error,
	success string,
	failure string,
) {
	id := c.Param("id")

	if err := action(c.Request().Context(), id); err != nil {
		logger.Error("Dashboard action failed", "path", c.Request().URL.Path, "id", id, "error", err)
		SetErrorFlash(s, failure)
		c.Redirect(back, http.StatusSeeOther)
		return
	}

	if success != "" {
		SetSuccessFlash(s, success)
	}

	c.Redirect(back, http.StatusSeeOther)
}

// ReferenceRanges renders the stored kidney reference ranges.
func ReferenceRanges(c flamego.Context, t template.Template, data template.Data) {
	setPageTitle(data, "القيم المرجعية")
	data["IsReferenceRanges"] = true

	ranges, err := listReferenceRangesFn(c.Request().Context())
	if err != nil {
		logger.Error("Error fetching reference ranges", "error", err)
		data["Error"] = "تعذر تحميل القيم المرجعية"
	} else {
		data["Ranges"] = ranges
	}

	t.HTML(http.StatusOK, "reference_ranges")
}

// weekStart returns the first day of the visit chart window.
func weekStart(now time.Time, loc *time.Location) time.Time {
	return db.StartOfDay(now, loc).AddDate(0, 0, -(visitChartDays - 1))
}
