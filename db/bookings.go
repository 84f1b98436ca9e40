/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// CreateBookingInput defines data for a new appointment request.
type CreateBookingInput struct {
	PatientName  string
	PatientPhone string
	PatientEmail *string
	Address      *string
	ClinicID     string
	ClinicName   string
	VisitType    VisitType
	BookingDate  time.Time
	BookingTime  string
	Notes        *string
}

// Validate checks the required booking fields.
func (in *CreateBookingInput) Validate() error {
	if strings.TrimSpace(in.PatientName) == "" {
		return ErrBookingNameRequired
	}
	if strings.TrimSpace(in.PatientPhone) == "" {
		return ErrBookingPhoneRequired
	}
	if in.BookingDate.IsZero() || strings.TrimSpace(in.BookingTime) == "" {
		return ErrBookingDateRequired
	}
	return nil
}

const bookingColumns = `id, patient_name, patient_phone, patient_email, address, clinic_id,
	visit_type, booking_date, booking_time, status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID,
		&b.PatientName,
		&b.PatientPhone,
		&b.PatientEmail,
		&b.Address,
		&b.ClinicID,
		&b.VisitType,
		&b.BookingDate,
		&b.BookingTime,
		&b.Status,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBooking stores a pending booking and raises a dashboard notification
// in the same transaction.
func CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	visitType := input.VisitType
	if visitType != VisitFollowUp {
		visitType = VisitNew
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	booking, err := scanBooking(tx.QueryRow(ctx, `
		INSERT INTO bookings (patient_name, patient_phone, patient_email, address, clinic_id,
			visit_type, booking_date, booking_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+bookingColumns,
		strings.TrimSpace(input.PatientName),
		strings.TrimSpace(input.PatientPhone),
		input.PatientEmail,
		input.Address,
		input.ClinicID,
		visitType,
		input.BookingDate,
		input.BookingTime,
		input.Notes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	clinicName := input.ClinicName
	if clinicName == "" {
		clinicName = input.ClinicID
	}

	message := fmt.Sprintf("طلب %s من %s في %s بتاريخ %s الساعة %s",
		visitType.Label(), booking.PatientName, clinicName, booking.FormatDate(), booking.BookingTime)

	if err := insertNotification(ctx, tx, "حجز جديد", message, NotificationBooking); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	logger.Info("Booking created", "booking_id", booking.ID, "clinic", booking.ClinicID)

	return booking, nil
}

// GetBooking returns a booking by ID.
func GetBooking(ctx context.Context, id string) (*Booking, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	booking, err := scanBooking(pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// ListBookings returns bookings ordered by appointment date and time.
// A non-positive limit returns every booking.
func ListBookings(ctx context.Context, limit int) ([]Booking, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY booking_date ASC, booking_time ASC, created_at ASC`
	args := []any{}

	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// CountBookings returns the total number of bookings.
func CountBookings(ctx context.Context) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

// UpdateBookingStatus confirms or cancels a booking.
func UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}
	if !status.Valid() {
		return ErrInvalidBookingStatus
	}

	command, err := pool.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}
