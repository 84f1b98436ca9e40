/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errSessionUserMissing = errors.New("session user missing")
	errMissingDate        = errors.New("missing date")
	errInvalidDate        = errors.New("invalid date")
	errDateInPast         = errors.New("date is in the past")
	errUnknownClinic      = errors.New("unknown clinic")
	errUnknownTimeSlot    = errors.New("unknown time slot")
	errPasswordMismatch   = errors.New("passwords do not match")
)
