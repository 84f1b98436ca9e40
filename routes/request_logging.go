/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/nephroclinic/clinic/db"
	"github.com/nephroclinic/clinic/kidney"
	"github.com/nephroclinic/clinic/logging"
)

var requestLogger = logging.Logger(logging.SourceWebRequest)

// RequestLogger logs request metadata and timing for each HTTP request.
func RequestLogger(c flamego.Context, s session.Session) {
	start := time.Now()

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	fields := []interface{}{
		"event", "request",
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	fields = append(fields, baseRequestFields(c, s)...)

	requestLogger.Info("request", fields...)
}

func logAccessDenied(c flamego.Context, s session.Session, reason string, status int, redirect string, extra ...interface{}) {
	fields := []interface{}{
		"event", "access_denied",
		"reason", reason,
		"status", status,
	}
	if redirect != "" {
		fields = append(fields, "redirect", redirect)
	}

	fields = append(fields, baseRequestFields(c, s)...)
	fields = append(fields, extra...)

	requestLogger.Warn("access denied", fields...)
}

// logBookingSubmitted records a stored booking without patient details.
func logBookingSubmitted(c flamego.Context, s session.Session, booking *db.Booking, giftCode bool) {
	fields := []interface{}{
		"event", "booking_submitted",
		"booking_id", booking.ID.String(),
		"clinic", booking.ClinicID,
		"visit_type", string(booking.VisitType),
		"booking_date", booking.FormatDate(),
		"gift_code", giftCode,
	}
	fields = append(fields, baseRequestFields(c, s)...)

	requestLogger.Info("booking submitted", fields...)
}

// logAnalysis records which tests were interpreted and the outcome severity.
// Lab values are never logged.
func logAnalysis(c flamego.Context, channel string, outcome kidney.Outcome) {
	tests := make([]string, 0, len(outcome.Results))
	for _, result := range outcome.Results {
		tests = append(tests, string(result.Test))
	}

	fields := []interface{}{
		"event", "kidney_analysis",
		"channel", channel,
		"tests", strings.Join(tests, ","),
		"has_danger", outcome.HasDanger,
	}
	if outcome.EGFRStage != nil {
		fields = append(fields, "egfr_stage", outcome.EGFRStage.Label())
	}
	fields = append(fields, requestFields(c)...)

	requestLogger.Info("kidney analysis", fields...)
}

func baseRequestFields(c flamego.Context, s session.Session) []interface{} {
	authenticated, userID := sessionAuthInfo(s)

	fields := append(requestFields(c), "authenticated", authenticated)
	if userID != "" {
		fields = append(fields, "user_id", userID)
	}

	return fields
}

func requestFields(c flamego.Context) []interface{} {
	return []interface{}{
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", clientIP(c),
		"user_agent", c.Request().UserAgent(),
	}
}

func sessionAuthInfo(s session.Session) (bool, string) {
	if !isAuthenticated(s) {
		return false, ""
	}

	userID, _ := getSessionUserID(s)

	return true, userID
}

func clientIP(c flamego.Context) string {
	forwardedFor := c.Request().Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		if idx := strings.Index(forwardedFor, ","); idx != -1 {
			forwardedFor = forwardedFor[:idx]
		}

		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}

	return c.RemoteAddr()
}
