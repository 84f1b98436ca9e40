// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestContactVCard(t *testing.T) {
	t.Parallel()

	app := newRouteTestApp()
	app.Get("/contact.vcf", ContactVCard)

	rec := performGET(t, app, "/contact.vcf")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/vcard") {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "dr-noha-gamal.vcf") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "BEGIN:VCARD") || !strings.Contains(body, "END:VCARD") {
		t.Fatalf("expected vCard body, got %q", body)
	}
}

//nolint:paralleltest // Overrides package-level seams.
func TestContactVCardEncodingFailure(t *testing.T) {
	original := writeVCardFn
	writeVCardFn = func(io.Writer) error { return errTestBoom }

	t.Cleanup(func() {
		writeVCardFn = original
	})

	app := newRouteTestApp()
	app.Get("/contact.vcf", ContactVCard)

	if rec := performGET(t, app, "/contact.vcf"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

//nolint:paralleltest // Overrides the handler config.
func TestLocationsMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nmap"), 0o600); err != nil {
		t.Fatalf("failed to write map: %v", err)
	}

	Configure(Config{LocationsMapPath: path})
	t.Cleanup(func() {
		Configure(Config{})
	})

	app := newRouteTestApp()
	app.Get("/locations-map.png", LocationsMap)

	rec := performGET(t, app, "/locations-map.png")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Fatalf("unexpected cache control %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected content type %q", got)
	}
}
