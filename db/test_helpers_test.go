// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	passwordHashCost = bcrypt.MinCost
}

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func mustCreateStaff(t *testing.T, email string, role Role) *StaffMember {
	t.Helper()

	member, err := CreateUser(testContext(), CreateUserInput{
		Email:    email,
		FullName: "Staff " + string(role),
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("failed to create staff member: %v", err)
	}

	return member
}

func mustCreateBooking(t *testing.T, name string, date time.Time, slot string) *Booking {
	t.Helper()

	booking, err := CreateBooking(testContext(), CreateBookingInput{
		PatientName:  name,
		PatientPhone: "01012345678",
		ClinicID:     "assiut",
		ClinicName:   "عيادة أسيوط",
		VisitType:    VisitNew,
		BookingDate:  date,
		BookingTime:  slot,
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	return booking
}
