/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Rating bounds for patient reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// CreateReviewInput defines data for a new patient review.
type CreateReviewInput struct {
	PatientName string
	Rating      int
	Comment     string
}

// Validate checks the review fields.
func (in *CreateReviewInput) Validate() error {
	if strings.TrimSpace(in.PatientName) == "" {
		return ErrReviewNameRequired
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return ErrReviewRatingOutOfRange
	}
	return nil
}

// CreateReview stores a pending review and notifies staff.
func CreateReview(ctx context.Context, input CreateReviewInput) (*Review, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var comment *string
	if trimmed := strings.TrimSpace(input.Comment); trimmed != "" {
		comment = &trimmed
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var review Review
	if err := tx.QueryRow(ctx, `
		INSERT INTO reviews (patient_name, rating, comment)
		VALUES ($1, $2, $3)
		RETURNING id, patient_name, rating, comment, status, created_at
	`, strings.TrimSpace(input.PatientName), input.Rating, comment).Scan(
		&review.ID,
		&review.PatientName,
		&review.Rating,
		&review.Comment,
		&review.Status,
		&review.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	message := fmt.Sprintf("تم استلام تقييم جديد من %s بتقييم %d نجوم", review.PatientName, review.Rating)
	if err := insertNotification(ctx, tx, "تقييم جديد", message, NotificationReview); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}

	return &review, nil
}

// ListReviews returns reviews newest first. A nil status returns all reviews.
func ListReviews(ctx context.Context, status *ReviewStatus, limit int) ([]Review, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, patient_name, rating, comment, status, created_at
		FROM reviews
		WHERE ($1::review_status IS NULL OR status = $1)
		ORDER BY created_at DESC
	`
	args := []any{status}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review

	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.PatientName, &r.Rating, &r.Comment, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// ListApprovedReviews returns the newest published reviews.
func ListApprovedReviews(ctx context.Context, limit int) ([]Review, error) {
	status := ReviewApproved
	return ListReviews(ctx, &status, limit)
}

// ApproveReview publishes a pending review.
func ApproveReview(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `UPDATE reviews SET status = 'approved' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to approve review: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// DeleteReview removes a review.
func DeleteReview(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// GetReviewStats counts reviews by status. The average covers approved
// reviews only and is rounded to one decimal place.
func GetReviewStats(ctx context.Context) (ReviewStats, error) {
	if pool == nil {
		return ReviewStats{}, ErrDatabaseConnectionNotInitialized
	}

	var (
		stats   ReviewStats
		average *float64
	)

	err := pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			AVG(rating) FILTER (WHERE status = 'approved')::double precision
		FROM reviews
	`).Scan(&stats.Total, &stats.Pending, &stats.Approved, &average)
	if err != nil {
		return ReviewStats{}, fmt.Errorf("failed to get review stats: %w", err)
	}

	if average != nil {
		stats.AverageRating = math.Round(*average*10) / 10
	}

	return stats, nil
}
