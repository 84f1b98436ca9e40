// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package whatsapp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nephroclinic/clinic/logging"
)

func newBufferedWALogger(module string) (*waLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	base := log.NewWithOptions(&buf, log.Options{Formatter: log.LogfmtFormatter}).
		With("source", logging.SourceWhatsApp)

	return &waLogger{base: base, module: module}, &buf
}

func TestNewWALoggerUsesClinicLogger(t *testing.T) {
	t.Parallel()

	for _, module := range []string{"store", "client"} {
		wa, ok := newWALogger(module).(*waLogger)
		if !ok {
			t.Fatalf("unexpected logger type for %q", module)
		}
		if wa.base != logger {
			t.Fatalf("expected %q logger to write through the whatsapp source logger", module)
		}
		if wa.module != module {
			t.Fatalf("expected module %q, got %q", module, wa.module)
		}
	}
}

func TestWALoggerSubJoinsModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parent string
		sub    []string
		want   string
	}{
		{name: "root", parent: "", sub: []string{"Socket"}, want: "Socket"},
		{name: "client socket", parent: "client", sub: []string{"Socket"}, want: "client/Socket"},
		{name: "nested", parent: "store", sub: []string{"Upgrade", "v7"}, want: "store/Upgrade/v7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wa, _ := newBufferedWALogger(tt.parent)
			for _, module := range tt.sub {
				next, ok := wa.Sub(module).(*waLogger)
				if !ok {
					t.Fatalf("unexpected sub logger type for %q", module)
				}
				wa = next
			}

			if wa.module != tt.want {
				t.Fatalf("expected module %q, got %q", tt.want, wa.module)
			}
		})
	}
}

func TestWALoggerTagsLibraryOutput(t *testing.T) {
	t.Parallel()

	wa, buf := newBufferedWALogger("client")
	events := wa.Sub("events")

	events.Warnf("stream error %d", 503)

	output := buf.String()
	for _, want := range []string{
		"source=whatsapp",
		"component=whatsmeow",
		"module=client/events",
		"stream error 503",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected log to contain %q, got %q", want, output)
		}
	}
}

func TestWALoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	wa, buf := newBufferedWALogger("")

	wa.Debugf("frame %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected debug output to be dropped at info level, got %q", buf.String())
	}

	wa.Errorf("pairing failed: %s", "timeout")
	wa.Infof("paired")

	output := buf.String()
	if !strings.Contains(output, "pairing failed: timeout") || !strings.Contains(output, "paired") {
		t.Fatalf("unexpected output %q", output)
	}
	if strings.Contains(output, "module=") {
		t.Fatalf("expected no module key for the root logger, got %q", output)
	}
}
