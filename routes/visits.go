/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/google/uuid"

	"github.com/nephroclinic/clinic/db"
)

var recordVisitFn = db.RecordVisit

// VisitorTracker records a page view for successful public page loads.
// Staff sessions are not counted.
func VisitorTracker(c flamego.Context, s session.Session) {
	c.Next()

	if c.Request().Method != http.MethodGet || isAuthenticated(s) {
		return
	}

	status := c.ResponseWriter().Status()
	if status != 0 && status != http.StatusOK {
		return
	}

	visitorID := ensureVisitorID(s)

	if err := recordVisitFn(c.Request().Context(), c.Request().URL.Path, visitorID, c.Request().UserAgent()); err != nil {
		logger.Warn("Failed to record visit", "path", c.Request().URL.Path, "error", err)
	}
}

func ensureVisitorID(s session.Session) uuid.UUID {
	if raw, ok := s.Get(db.SessionKeyVisitorID).(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
	}

	id := uuid.New()
	s.Set(db.SessionKeyVisitorID, id.String())

	return id
}
