/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package giftcard

import "errors"

var (
	ErrNameRequired       = errors.New("patient name is required")
	ErrNameNotEnglish     = errors.New("patient name must contain English letters only")
	ErrInvalidDiscount    = errors.New("discount must be a whole number")
	ErrDiscountOutOfRange = errors.New("discount must be between 1 and 100")
	ErrExpiryRequired     = errors.New("expiry date is required")
	ErrInvalidExpiry      = errors.New("expiry date must be formatted as YYYY-MM-DD")
	ErrExpiryInPast       = errors.New("expiry date is in the past")
)
