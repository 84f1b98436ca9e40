// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNotificationReadAndDelete(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	n, err := CreateNotification(ctx, "رسالة جديدة", "رسالة من الموقع", NotificationContact)
	if err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}
	if n.IsRead {
		t.Fatal("new notification should be unread")
	}

	unread, err := CountUnreadNotifications(ctx)
	if err != nil || unread != 1 {
		t.Fatalf("CountUnreadNotifications = %d, %v", unread, err)
	}

	if err := MarkNotificationRead(ctx, n.ID.String()); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}

	unread, err = CountUnreadNotifications(ctx)
	if err != nil || unread != 0 {
		t.Fatalf("CountUnreadNotifications after read = %d, %v", unread, err)
	}

	if err := DeleteNotification(ctx, n.ID.String()); err != nil {
		t.Fatalf("DeleteNotification failed: %v", err)
	}
	if err := DeleteNotification(ctx, n.ID.String()); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	if err := MarkNotificationRead(ctx, uuid.NewString()); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestListNotificationsLimit(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	for i := 0; i < 3; i++ {
		if _, err := CreateNotification(ctx, "title", "message", NotificationBooking); err != nil {
			t.Fatalf("CreateNotification failed: %v", err)
		}
	}

	notifications, err := ListNotifications(ctx, 2)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
}
