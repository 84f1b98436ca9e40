/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import "errors"

var (
	// ErrNotConnected is returned when sending while the linked device is offline.
	ErrNotConnected = errors.New("whatsapp client is not connected")
	// ErrInvalidPhone is returned when a phone number has no digits.
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrEmptyMessage is returned when asked to send blank text.
	ErrEmptyMessage = errors.New("message text is empty")

	errNoExistingSessionToReconnect = errors.New("no existing session to reconnect")
	errNoDeviceStoreContainer       = errors.New("whatsapp SQL store container is unavailable")
)
