/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"strings"
	"time"

	"github.com/nephroclinic/clinic/db"
)

const dateLayout = "2006-01-02"

func getOptionalString(val string) *string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseFutureDate parses a YYYY-MM-DD form date in loc and rejects days
// before today.
func parseFutureDate(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissingDate
	}

	day, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, errInvalidDate
	}

	if day.Before(db.StartOfDay(now, loc)) {
		return time.Time{}, errDateInPast
	}

	return day, nil
}
