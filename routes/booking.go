/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/nephroclinic/clinic/clinic"
	"github.com/nephroclinic/clinic/db"
	"github.com/nephroclinic/clinic/whatsapp"
)

const (
	msgBookingIncomplete = "برجاء ملء جميع البيانات المطلوبة"
	msgContactIncomplete = "برجاء ملء الاسم والرسالة على الأقل"
	msgBookingFailed     = "تعذر إرسال طلب الحجز، برجاء المحاولة مرة أخرى"
	msgContactFailed     = "تعذر إرسال الرسالة، برجاء المحاولة مرة أخرى"

	notifyTimeout = 30 * time.Second
)

var (
	createBookingFn      = db.CreateBooking
	createNotificationFn = db.CreateNotification
	notifyClinicFn       = sendClinicWhatsApp
)

func sendClinicWhatsApp(ctx context.Context, phone, text string) error {
	client := getWhatsAppClientFn()
	if client == nil {
		return whatsapp.ErrNotConnected
	}

	return client.SendText(ctx, phone, text)
}

// SubmitBooking stores an appointment request and forwards the patient to
// the clinic's WhatsApp chat with the request prefilled.
func SubmitBooking(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing booking form", "error", err)
		SetErrorFlash(s, msgBookingIncomplete)
		c.Redirect("/#booking", http.StatusSeeOther)
		return
	}

	form := c.Request().Form
	cfg := currentConfig()

	name := strings.TrimSpace(form.Get("name"))
	phone := strings.TrimSpace(form.Get("phone"))
	slot := strings.TrimSpace(form.Get("time"))

	if name == "" || phone == "" || slot == "" {
		SetErrorFlash(s, msgBookingIncomplete)
		c.Redirect("/#booking", http.StatusSeeOther)
		return
	}

	location, ok := clinic.LocationByID(strings.TrimSpace(form.Get("clinic")))
	if !ok {
		logger.Warn("Booking rejected", "reason", errUnknownClinic, "clinic", form.Get("clinic"))
		SetErrorFlash(s, msgBookingIncomplete)
		c.Redirect("/#booking", http.StatusSeeOther)
		return
	}

	if !clinic.IsTimeSlot(slot) {
		logger.Warn("Booking rejected", "reason", errUnknownTimeSlot, "time", slot)
		SetErrorFlash(s, msgBookingIncomplete)
		c.Redirect("/#booking", http.StatusSeeOther)
		return
	}

	day, err := parseFutureDate(form.Get("date"), nowFn(), cfg.Location)
	if err != nil {
		logger.Warn("Booking rejected", "reason", err, "date", form.Get("date"))
		SetErrorFlash(s, msgBookingIncomplete)
		c.Redirect("/#booking", http.StatusSeeOther)
		return
	}

	visitType := db.VisitNew
	if form.Get("visit_type") == string(db.VisitFollowUp) {
		visitType = db.VisitFollowUp
	}

	notes := getOptionalString(form.Get("notes"))
	code := strings.ToUpper(strings.TrimSpace(form.Get("gift_code")))
	hasGiftCode := giftCodePattern.MatchString(code)
	if hasGiftCode {
		withCode := "كود الخصم: " + code
		if notes != nil {
			withCode = *notes + "\n" + withCode
		}
		notes = &withCode
	}

	booking, err := createBookingFn(c.Request().Context(), db.CreateBookingInput{
		PatientName:  name,
		PatientPhone: phone,
		PatientEmail: getOptionalString(form.Get("email")),
		Address:      getOptionalString(form.Get("address")),
		ClinicID:     location.ID,
		ClinicName:   location.Name,
		VisitType:    visitType,
		BookingDate:  day,
		BookingTime:  slot,
		Notes:        notes,
	})
	if err != nil {
		logger.Error("Error creating booking", "error", err)
		SetErrorFlash(s, msgBookingFailed)
		c.Redirect("/#booking", http.StatusSeeOther)
		return
	}

	logBookingSubmitted(c, s, booking, hasGiftCode)

	address := ""
	if booking.Address != nil {
		address = *booking.Address
	}

	message := whatsapp.BookingMessage(whatsapp.BookingDetails{
		Name:       booking.PatientName,
		Phone:      booking.PatientPhone,
		Address:    address,
		ClinicName: location.Name,
		Date:       booking.FormatDate(),
		Time:       booking.BookingTime,
		VisitLabel: booking.VisitType.Label(),
		FollowUp:   booking.VisitType == db.VisitFollowUp,
	})

	if cfg.WhatsAppNotify {
		go notifyClinic(cfg.ClinicWhatsApp, message)
	}

	c.Redirect(whatsapp.DeepLink(cfg.ClinicWhatsApp, message), http.StatusSeeOther)
}

func notifyClinic(phone, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := notifyClinicFn(ctx, phone, message); err != nil {
		logger.Warn("Failed to notify clinic over WhatsApp", "error", err)
	}
}

// SubmitContact records a contact message for the dashboard and forwards
// the visitor to the clinic's WhatsApp chat.
func SubmitContact(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing contact form", "error", err)
		SetErrorFlash(s, msgContactIncomplete)
		c.Redirect("/#contact", http.StatusSeeOther)
		return
	}

	form := c.Request().Form

	details := whatsapp.ContactDetails{
		Name:    strings.TrimSpace(form.Get("name")),
		Email:   strings.TrimSpace(form.Get("email")),
		Phone:   strings.TrimSpace(form.Get("phone")),
		Message: strings.TrimSpace(form.Get("message")),
	}

	if details.Name == "" || details.Message == "" {
		SetErrorFlash(s, msgContactIncomplete)
		c.Redirect("/#contact", http.StatusSeeOther)
		return
	}

	summary := fmt.Sprintf("%s: %s", details.Name, details.Message)
	if _, err := createNotificationFn(c.Request().Context(), "رسالة تواصل جديدة", summary, db.NotificationContact); err != nil {
		logger.Error("Error saving contact message", "error", err)
		SetErrorFlash(s, msgContactFailed)
		c.Redirect("/#contact", http.StatusSeeOther)
		return
	}

	c.Redirect(whatsapp.DeepLink(currentConfig().ClinicWhatsApp, whatsapp.ContactMessage(details)), http.StatusSeeOther)
}
