/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxUserAgentLength = 512

// RecordVisit stores a single page view.
func RecordVisit(ctx context.Context, pagePath string, visitorID uuid.UUID, userAgent string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	var agent *string
	if trimmed := strings.TrimSpace(userAgent); trimmed != "" {
		if len(trimmed) > maxUserAgentLength {
			trimmed = trimmed[:maxUserAgentLength]
		}
		agent = &trimmed
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO site_visits (page_path, visitor_id, user_agent) VALUES ($1, $2, $3)`,
		pagePath, visitorID, agent,
	); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	return nil
}

// CountVisitsSince returns how many page views happened at or after since.
func CountVisitsSince(ctx context.Context, since time.Time) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM site_visits WHERE created_at >= $1`, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}

	return count, nil
}

// DailyVisits returns one entry per day for the last days days, ending
// today in loc. Days without visits are reported with zero.
func DailyVisits(ctx context.Context, days int, now time.Time, loc *time.Location) ([]DailyVisitCount, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}
	if days <= 0 {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	today := StartOfDay(now, loc)
	start := today.AddDate(0, 0, -(days - 1))

	rows, err := pool.Query(ctx, `
		SELECT date_trunc('day', created_at AT TIME ZONE $2) AS day, COUNT(*)
		FROM site_visits
		WHERE created_at >= $1
		GROUP BY day
	`, start, loc.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily visits: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var (
			day   time.Time
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily visits: %w", err)
		}

		counts[day.Format("2006-01-02")] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily visits: %w", err)
	}

	return fillDailyVisits(start, days, counts), nil
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func fillDailyVisits(start time.Time, days int, counts map[string]int) []DailyVisitCount {
	series := make([]DailyVisitCount, 0, days)

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		series = append(series, DailyVisitCount{
			Day:    day,
			Visits: counts[day.Format("2006-01-02")],
		})
	}

	return series
}
