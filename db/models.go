/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the staff permission level.
type Role string

// Role values represent supported staff roles.
const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// Label returns the Arabic role name shown on the staff page.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "مدير"
	case RoleModerator:
		return "مساعد"
	default:
		return string(r)
	}
}

// User represents a staff account.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// StaffMember is a user together with a staff role.
type StaffMember struct {
	User
	Role      Role      `db:"role"`
	GrantedAt time.Time `db:"granted_at"`
}

// IsAdmin reports whether the staff member holds the admin role.
func (s *StaffMember) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// BookingStatus represents the confirmation state of a booking.
type BookingStatus string

// BookingStatus values represent supported booking states.
const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	default:
		return false
	}
}

// Label returns the Arabic status badge text.
func (s BookingStatus) Label() string {
	switch s {
	case BookingConfirmed:
		return "مؤكد"
	case BookingCancelled:
		return "ملغي"
	default:
		return "قيد الانتظار"
	}
}

// VisitType distinguishes a first visit from a follow-up.
type VisitType string

// VisitType values represent supported visit kinds.
const (
	VisitNew      VisitType = "new"
	VisitFollowUp VisitType = "followup"
)

// Label returns the Arabic visit type.
func (v VisitType) Label() string {
	if v == VisitFollowUp {
		return "إعادة كشف"
	}
	return "كشف جديد"
}

// Booking represents an appointment request made from the public site.
type Booking struct {
	ID           uuid.UUID     `db:"id"`
	PatientName  string        `db:"patient_name"`
	PatientPhone string        `db:"patient_phone"`
	PatientEmail *string       `db:"patient_email"`
	Address      *string       `db:"address"`
	ClinicID     string        `db:"clinic_id"`
	VisitType    VisitType     `db:"visit_type"`
	BookingDate  time.Time     `db:"booking_date"`
	BookingTime  string        `db:"booking_time"`
	Status       BookingStatus `db:"status"`
	Notes        *string       `db:"notes"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

// FormatDate returns the booking date as YYYY-MM-DD.
func (b *Booking) FormatDate() string {
	return b.BookingDate.Format("2006-01-02")
}

// ReviewStatus represents the moderation state of a review.
type ReviewStatus string

// ReviewStatus values represent supported moderation states.
const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
)

// Review represents a patient testimonial.
type Review struct {
	ID          uuid.UUID    `db:"id"`
	PatientName string       `db:"patient_name"`
	Rating      int          `db:"rating"`
	Comment     *string      `db:"comment"`
	Status      ReviewStatus `db:"status"`
	CreatedAt   time.Time    `db:"created_at"`
}

// Stars returns a slice sized to the rating for template loops.
func (r *Review) Stars() []struct{} {
	if r.Rating <= 0 {
		return nil
	}
	return make([]struct{}, r.Rating)
}

// ReviewStats summarizes reviews for the dashboard.
type ReviewStats struct {
	Total         int
	Pending       int
	Approved      int
	AverageRating float64
}

// NotificationType tags the origin of a dashboard notification.
type NotificationType string

// NotificationType values represent supported notification origins.
const (
	NotificationBooking NotificationType = "booking"
	NotificationReview  NotificationType = "review"
	NotificationContact NotificationType = "contact"
)

// Notification represents a staff dashboard notification.
type Notification struct {
	ID        uuid.UUID         `db:"id"`
	Title     string            `db:"title"`
	Message   string            `db:"message"`
	Type      *NotificationType `db:"type"`
	IsRead    bool              `db:"is_read"`
	CreatedAt time.Time         `db:"created_at"`
}

// DailyVisitCount is the number of page visits on a single day.
type DailyVisitCount struct {
	Day    time.Time
	Visits int
}

// Note represents a staff note written in org-mode markup.
type Note struct {
	ID        uuid.UUID  `db:"id"`
	UserID    *uuid.UUID `db:"user_id"`
	Title     string     `db:"title"`
	Content   string     `db:"content"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// LabReferenceRange is a stored copy of a kidney-panel reference range.
type LabReferenceRange struct {
	TestName    string    `db:"test_name"`
	DisplayName string    `db:"display_name"`
	Unit        string    `db:"unit"`
	MaleMin     float64   `db:"male_min"`
	MaleMax     float64   `db:"male_max"`
	FemaleMin   float64   `db:"female_min"`
	FemaleMax   float64   `db:"female_max"`
	DangerLow   *float64  `db:"danger_low"`
	DangerHigh  *float64  `db:"danger_high"`
	SortOrder   int       `db:"sort_order"`
	UpdatedAt   time.Time `db:"updated_at"`
}
