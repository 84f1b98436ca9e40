/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/nephroclinic/clinic/kidney"
)

// GetReferenceRangeDefinitions converts the interpreter's tables into rows.
// The kidney package is the source of truth; the table is a read-only mirror
// for the dashboard.
func GetReferenceRangeDefinitions() ([]LabReferenceRange, error) {
	definitions := make([]LabReferenceRange, 0, len(kidney.Tests))

	for i, test := range kidney.Tests {
		r, err := kidney.RangeFor(test)
		if err != nil {
			return nil, fmt.Errorf("failed to load range for %s: %w", test, err)
		}

		definitions = append(definitions, LabReferenceRange{
			TestName:    string(test),
			DisplayName: test.DisplayName(),
			Unit:        test.Unit(),
			MaleMin:     r.Male.Min,
			MaleMax:     r.Male.Max,
			FemaleMin:   r.Female.Min,
			FemaleMax:   r.Female.Max,
			DangerLow:   r.DangerLow,
			DangerHigh:  r.DangerHigh,
			SortOrder:   i,
		})
	}

	return definitions, nil
}

// SyncReferenceRanges upserts every kidney reference range into
// lab_reference_ranges and removes rows for tests no longer supported.
func SyncReferenceRanges(ctx context.Context) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	definitions, err := GetReferenceRangeDefinitions()
	if err != nil {
		return err
	}

	logger.Info("Syncing lab reference ranges", "count", len(definitions))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO lab_reference_ranges (
			test_name, display_name, unit,
			male_min, male_max, female_min, female_max,
			danger_low, danger_high, sort_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (test_name)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			unit = EXCLUDED.unit,
			male_min = EXCLUDED.male_min,
			male_max = EXCLUDED.male_max,
			female_min = EXCLUDED.female_min,
			female_max = EXCLUDED.female_max,
			danger_low = EXCLUDED.danger_low,
			danger_high = EXCLUDED.danger_high,
			sort_order = EXCLUDED.sort_order,
			updated_at = now()
	`

	names := make([]string, 0, len(definitions))

	for _, def := range definitions {
		if _, err := tx.Exec(ctx, query,
			def.TestName, def.DisplayName, def.Unit,
			def.MaleMin, def.MaleMax, def.FemaleMin, def.FemaleMax,
			def.DangerLow, def.DangerHigh, def.SortOrder,
		); err != nil {
			return fmt.Errorf("failed to sync reference range for %s: %w", def.TestName, err)
		}

		names = append(names, def.TestName)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM lab_reference_ranges WHERE NOT (test_name = ANY($1))`, names); err != nil {
		return fmt.Errorf("failed to prune reference ranges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reference ranges: %w", err)
	}

	return nil
}

// ListReferenceRanges returns the stored ranges in canonical test order.
func ListReferenceRanges(ctx context.Context) ([]LabReferenceRange, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT test_name, display_name, unit, male_min, male_max, female_min, female_max,
		       danger_low, danger_high, sort_order, updated_at
		FROM lab_reference_ranges
		ORDER BY sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reference ranges: %w", err)
	}
	defer rows.Close()

	var ranges []LabReferenceRange

	for rows.Next() {
		var r LabReferenceRange
		if err := rows.Scan(
			&r.TestName, &r.DisplayName, &r.Unit,
			&r.MaleMin, &r.MaleMax, &r.FemaleMin, &r.FemaleMax,
			&r.DangerLow, &r.DangerHigh, &r.SortOrder, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reference range: %w", err)
		}

		ranges = append(ranges, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reference ranges: %w", err)
	}

	return ranges, nil
}
