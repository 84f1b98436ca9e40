// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package clinic

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/emersion/go-vcard"
)

func TestLocationByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		name    string
		address string
		found   bool
	}{
		{id: "assiut", name: "عيادة أسيوط", address: "عمارات الأوقاف - عمارة 4 - الدور الثالث", found: true},
		{id: "mallawi", name: "عيادة ملوي", address: "14 شارع العرفاني - أمام الثانوية بنات", found: true},
		{id: "cairo", found: false},
		{id: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			loc, ok := LocationByID(tt.id)
			if ok != tt.found {
				t.Fatalf("LocationByID(%q) found = %v, want %v", tt.id, ok, tt.found)
			}
			if !ok {
				return
			}
			if loc.Name != tt.name || loc.Address != tt.address {
				t.Fatalf("unexpected location: %+v", loc)
			}
		})
	}
}

func TestLocationsReturnsCopy(t *testing.T) {
	t.Parallel()

	first := Locations()
	first[0].Name = "changed"

	if Locations()[0].Name == "changed" {
		t.Fatal("Locations should return a copy")
	}
}

func TestMapURL(t *testing.T) {
	t.Parallel()

	loc, _ := LocationByID("assiut")
	link := loc.MapURL()

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("MapURL does not parse: %v", err)
	}
	if parsed.Host != "www.google.com" {
		t.Fatalf("unexpected host %q", parsed.Host)
	}
	if query := parsed.Query().Get("query"); !strings.Contains(query, "أسيوط") {
		t.Fatalf("query should name the city, got %q", query)
	}
}

func TestTimeSlots(t *testing.T) {
	t.Parallel()

	slots := TimeSlots()
	if len(slots) != 11 {
		t.Fatalf("expected 11 slots, got %d", len(slots))
	}
	if slots[0] != "10:00 صباحاً" || slots[len(slots)-1] != "08:00 مساءً" {
		t.Fatalf("unexpected slot bounds: %q .. %q", slots[0], slots[len(slots)-1])
	}

	if !IsTimeSlot("12:00 ظهراً") {
		t.Fatal("expected noon slot to be valid")
	}
	if IsTimeSlot("09:00 مساءً") {
		t.Fatal("expected 9pm to be rejected")
	}
}

func TestServicesAndCredentials(t *testing.T) {
	t.Parallel()

	if got := len(Services()); got != 7 {
		t.Fatalf("expected 7 services, got %d", got)
	}
	if got := len(Credentials()); got != 4 {
		t.Fatalf("expected 4 credentials, got %d", got)
	}
}

func TestWriteVCard(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteVCard(&buf); err != nil {
		t.Fatalf("WriteVCard failed: %v", err)
	}

	card, err := vcard.NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("failed to decode vcard: %v", err)
	}

	if got := card.Value(vcard.FieldFormattedName); got != DoctorName {
		t.Fatalf("FN = %q", got)
	}
	if got := card.Value(vcard.FieldTelephone); !strings.HasSuffix(got, WhatsAppPhone) {
		t.Fatalf("TEL = %q", got)
	}
	if got := len(card.Addresses()); got != 2 {
		t.Fatalf("expected 2 addresses, got %d", got)
	}
	if got := card.Value(vcard.FieldVersion); got != "4.0" {
		t.Fatalf("VERSION = %q", got)
	}
}
