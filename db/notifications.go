/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DefaultNotificationLimit caps the dashboard notification list.
const DefaultNotificationLimit = 20

func insertNotification(ctx context.Context, tx pgx.Tx, title, message string, kind NotificationType) error {
	if _, err := tx.Exec(ctx,
		`INSERT INTO notifications (title, message, type) VALUES ($1, $2, $3)`,
		title, message, kind,
	); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// CreateNotification adds an unread dashboard notification.
func CreateNotification(ctx context.Context, title, message string, kind NotificationType) (*Notification, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var n Notification
	err := pool.QueryRow(ctx, `
		INSERT INTO notifications (title, message, type)
		VALUES ($1, $2, $3)
		RETURNING id, title, message, type, is_read, created_at
	`, title, message, kind).Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return &n, nil
}

// ListNotifications returns the newest notifications first.
func ListNotifications(ctx context.Context, limit int) ([]Notification, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}

	rows, err := pool.Query(ctx, `
		SELECT id, title, message, type, is_read, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification

	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// CountUnreadNotifications returns how many notifications are unread.
func CountUnreadNotifications(ctx context.Context) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkNotificationRead flags a notification as read.
func MarkNotificationRead(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// DeleteNotification removes a notification.
func DeleteNotification(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
