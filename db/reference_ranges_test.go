// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"io/fs"
	"testing"

	"github.com/nephroclinic/clinic/kidney"
)

func TestGetReferenceRangeDefinitions(t *testing.T) {
	t.Parallel()

	defs, err := GetReferenceRangeDefinitions()
	if err != nil {
		t.Fatalf("GetReferenceRangeDefinitions failed: %v", err)
	}

	if len(defs) != len(kidney.Tests) {
		t.Fatalf("expected %d definitions, got %d", len(kidney.Tests), len(defs))
	}

	for i, def := range defs {
		if def.TestName != string(kidney.Tests[i]) || def.SortOrder != i {
			t.Fatalf("definition %d out of order: %+v", i, def)
		}
		if def.Unit == "" || def.DisplayName == "" {
			t.Fatalf("definition %s missing unit or name", def.TestName)
		}
	}

	if defs[0].FemaleMax != 1.1 || defs[0].MaleMax != 1.3 {
		t.Fatalf("unexpected creatinine bands: %+v", defs[0])
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(GetEmbeddedMigrations(), MigrationsDir)
	if err != nil {
		t.Fatalf("expected embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one migration")
	}
}

func TestSyncReferenceRanges(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	if err := SyncReferenceRanges(ctx); err != nil {
		t.Fatalf("second sync should be idempotent: %v", err)
	}

	ranges, err := ListReferenceRanges(ctx)
	if err != nil {
		t.Fatalf("ListReferenceRanges failed: %v", err)
	}

	if len(ranges) != len(kidney.Tests) {
		t.Fatalf("expected %d ranges, got %d", len(kidney.Tests), len(ranges))
	}

	potassium := ranges[2]
	if potassium.TestName != "potassium" {
		t.Fatalf("expected potassium third, got %s", potassium.TestName)
	}
	if potassium.DangerLow == nil || *potassium.DangerLow != 2.5 {
		t.Fatalf("unexpected potassium danger low %v", potassium.DangerLow)
	}
	if ranges[0].DangerLow != nil {
		t.Fatal("creatinine has no danger low threshold")
	}
}
