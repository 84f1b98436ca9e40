/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	ErrDatabaseURLEnvVarNotSet          = errors.New("DATABASE_URL environment variable is not set")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in DATABASE_URL")

	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidBookingStatus = errors.New("invalid booking status")
	ErrBookingNameRequired  = errors.New("patient name is required")
	ErrBookingPhoneRequired = errors.New("patient phone is required")
	ErrBookingDateRequired  = errors.New("booking date and time are required")

	ErrReviewNotFound         = errors.New("review not found")
	ErrReviewNameRequired     = errors.New("reviewer name is required")
	ErrReviewRatingOutOfRange = errors.New("rating must be between 1 and 5")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteTitleRequired = errors.New("note title is required")

	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailRequired         = errors.New("email is required")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrNameRequired          = errors.New("name is required")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrUserAlreadyStaff      = errors.New("user already has staff access")
	ErrCannotRemoveLastAdmin = errors.New("cannot remove the last admin")
	ErrInvalidRole           = errors.New("invalid staff role")
)
