// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"
	"time"
)

func TestBookingStatusValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status BookingStatus
		want   bool
	}{
		{status: BookingPending, want: true},
		{status: BookingConfirmed, want: true},
		{status: BookingCancelled, want: true},
		{status: BookingStatus("done"), want: false},
		{status: BookingStatus(""), want: false},
	}

	for _, tc := range cases {
		if got := tc.status.Valid(); got != tc.want {
			t.Fatalf("Valid(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	if VisitFollowUp.Label() != "إعادة كشف" || VisitNew.Label() != "كشف جديد" {
		t.Fatal("unexpected visit type labels")
	}
	if BookingConfirmed.Label() != "مؤكد" || BookingStatus("x").Label() != "قيد الانتظار" {
		t.Fatal("unexpected booking status labels")
	}
	if RoleAdmin.Label() != "مدير" || RoleModerator.Label() != "مساعد" {
		t.Fatal("unexpected role labels")
	}
}

func TestReviewStars(t *testing.T) {
	t.Parallel()

	review := Review{Rating: 4}
	if got := len(review.Stars()); got != 4 {
		t.Fatalf("expected 4 stars, got %d", got)
	}

	empty := Review{}
	if empty.Stars() != nil {
		t.Fatal("expected no stars for zero rating")
	}
}

func TestCreateBookingInputValidate(t *testing.T) {
	t.Parallel()

	valid := CreateBookingInput{
		PatientName:  "Sara",
		PatientPhone: "01012345678",
		ClinicID:     "mallawi",
		BookingDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		BookingTime:  "10:00 صباحاً",
	}

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
		want   error
	}{
		{name: "valid", mutate: func(*CreateBookingInput) {}, want: nil},
		{name: "blank name", mutate: func(in *CreateBookingInput) { in.PatientName = "  " }, want: ErrBookingNameRequired},
		{name: "missing phone", mutate: func(in *CreateBookingInput) { in.PatientPhone = "" }, want: ErrBookingPhoneRequired},
		{name: "missing date", mutate: func(in *CreateBookingInput) { in.BookingDate = time.Time{} }, want: ErrBookingDateRequired},
		{name: "missing time", mutate: func(in *CreateBookingInput) { in.BookingTime = "" }, want: ErrBookingDateRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			input := valid
			tc.mutate(&input)

			if err := input.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateReviewInputValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input CreateReviewInput
		want  error
	}{
		{input: CreateReviewInput{PatientName: "Ali", Rating: 5}, want: nil},
		{input: CreateReviewInput{PatientName: "Ali", Rating: 0}, want: ErrReviewRatingOutOfRange},
		{input: CreateReviewInput{PatientName: "Ali", Rating: 6}, want: ErrReviewRatingOutOfRange},
		{input: CreateReviewInput{PatientName: " ", Rating: 3}, want: ErrReviewNameRequired},
	}

	for _, tc := range cases {
		if err := tc.input.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("Validate(%+v) = %v, want %v", tc.input, err, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	got, err := NormalizeEmail("  Doctor@Clinic.Example ")
	if err != nil {
		t.Fatalf("NormalizeEmail returned error: %v", err)
	}
	if got != "doctor@clinic.example" {
		t.Fatalf("unexpected normalized email %q", got)
	}

	if _, err := NormalizeEmail(""); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
	if _, err := NormalizeEmail("Dr <doctor@clinic.example>"); err == nil {
		t.Fatal("expected display-name form to be rejected")
	}
	if _, err := NormalizeEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("12345"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := ValidatePassword("123456"); err != nil {
		t.Fatalf("expected six characters to pass, got %v", err)
	}
	if err := ValidatePassword("كلمةسر"); err != nil {
		t.Fatalf("expected six Arabic letters to pass, got %v", err)
	}
}

func TestFillDailyVisits(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	counts := map[string]int{
		"2026-01-05": 3,
		"2026-01-07": 9,
	}

	series := fillDailyVisits(start, 3, counts)
	if len(series) != 3 {
		t.Fatalf("expected 3 days, got %d", len(series))
	}

	want := []int{3, 0, 9}
	for i, day := range series {
		if day.Visits != want[i] {
			t.Fatalf("day %d visits = %d, want %d", i, day.Visits, want[i])
		}
	}

	if !series[2].Day.Equal(time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last day %v", series[2].Day)
	}
}

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	cairo := time.FixedZone("EET", 2*60*60)
	now := time.Date(2026, 2, 10, 23, 30, 0, 0, time.UTC)

	got := StartOfDay(now, cairo)
	want := time.Date(2026, 2, 11, 0, 0, 0, 0, cairo)

	if !got.Equal(want) {
		t.Fatalf("StartOfDay = %v, want %v", got, want)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("unexpected escape %q", got)
	}
}
