// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerInitializers(t *testing.T) {
	t.Parallel()

	Init()
	if l := Logger(SourceClinic); l == nil {
		t.Fatal("Logger returned nil")
	}
	if l := StdLogger(SourceWeb); l == nil {
		t.Fatal("StdLogger returned nil")
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want log.Level
	}{
		{raw: "", want: log.InfoLevel},
		{raw: "debug", want: log.DebugLevel},
		{raw: "warn", want: log.WarnLevel},
		{raw: "verbose", want: log.InfoLevel},
	}

	for _, tt := range tests {
		if got := levelFromEnv(tt.raw); got != tt.want {
			t.Fatalf("levelFromEnv(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
