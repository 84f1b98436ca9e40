/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted staff password.
const MinPasswordLength = 6

var passwordHashCost = bcrypt.DefaultCost

// Compared against when the email is unknown so both paths cost a bcrypt round.
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("clinic-dummy-password"), bcrypt.DefaultCost)

// CreateUserInput defines data for creating a staff account.
type CreateUserInput struct {
	Email    string
	FullName string
	Password string
	Role     Role
}

// InviteModeratorInput defines data for adding a moderator.
type InviteModeratorInput struct {
	Email    string
	FullName string
	Password string
}

const staffSelect = `
	SELECT u.id, u.email, u.full_name, u.password_hash, u.created_at, u.updated_at,
	       r.role, r.created_at
	FROM users u
	JOIN user_roles r ON r.user_id = u.id
`

func scanStaff(row pgx.Row) (*StaffMember, error) {
	var s StaffMember
	if err := row.Scan(
		&s.ID,
		&s.Email,
		&s.FullName,
		&s.PasswordHash,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Role,
		&s.GrantedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// NormalizeEmail trims and lowercases an email address and checks its syntax.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmailRequired
	}

	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	return email, nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CountStaff returns the number of users holding a staff role.
func CountStaff(ctx context.Context) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(DISTINCT user_id) FROM user_roles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}

	return count, nil
}

// CreateUser creates a user with the given staff role.
func CreateUser(ctx context.Context, input CreateUserInput) (*StaffMember, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}

	if input.Role != RoleAdmin && input.Role != RoleModerator {
		return nil, ErrInvalidRole
	}

	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var userID string
	if err := tx.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, name, hash).Scan(&userID); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, input.Role); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit user: %w", err)
	}

	return GetStaffMember(ctx, userID)
}

// Authenticate verifies staff credentials. Users without a staff role are
// rejected like unknown emails.
func Authenticate(ctx context.Context, email, password string) (*StaffMember, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	email = strings.ToLower(strings.TrimSpace(email))

	member, err := scanStaff(pool.QueryRow(ctx,
		staffSelect+` WHERE lower(u.email) = $1 ORDER BY (r.role = 'admin') DESC LIMIT 1`,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return member, nil
}

// GetStaffMember returns a staff member by user ID, preferring the admin role.
func GetStaffMember(ctx context.Context, userID string) (*StaffMember, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	member, err := scanStaff(pool.QueryRow(ctx,
		staffSelect+` WHERE u.id = $1 ORDER BY (r.role = 'admin') DESC LIMIT 1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	return member, nil
}

// ListStaff returns every admin and moderator, admins first.
func ListStaff(ctx context.Context) ([]StaffMember, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT id, email, full_name, password_hash, created_at, updated_at, role, granted_at
		FROM (
			SELECT DISTINCT ON (u.id)
			       u.id, u.email, u.full_name, u.password_hash, u.created_at, u.updated_at,
			       r.role, r.created_at AS granted_at
			FROM users u
			JOIN user_roles r ON r.user_id = u.id
			ORDER BY u.id, (r.role = 'admin') DESC
		) staff
		ORDER BY (role = 'admin') DESC, granted_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var staff []StaffMember

	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}

		staff = append(staff, *member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// InviteModerator grants the moderator role to the email's user, creating
// the account when it does not exist. The returned bool reports whether a
// new account was created.
func InviteModerator(ctx context.Context, input InviteModeratorInput) (*StaffMember, bool, error) {
	if pool == nil {
		return nil, false, ErrDatabaseConnectionNotInitialized
	}

	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, false, err
	}

	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return nil, false, ErrNameRequired
	}

	if err := ValidatePassword(input.Password); err != nil {
		return nil, false, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var (
		userID  string
		created bool
	)

	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE lower(email) = $1 FOR UPDATE`, email).Scan(&userID)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, false, err
		}

		if err := tx.QueryRow(ctx, `
			INSERT INTO users (email, full_name, password_hash)
			VALUES ($1, $2, $3)
			RETURNING id
		`, email, name, hash).Scan(&userID); err != nil {
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}

		created = true
	case err != nil:
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	default:
		var isStaff bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1)`, userID).Scan(&isStaff); err != nil {
			return nil, false, fmt.Errorf("failed to check roles: %w", err)
		}
		if isStaff {
			return nil, false, ErrUserAlreadyStaff
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET full_name = $1, updated_at = now() WHERE id = $2`, name, userID); err != nil {
			return nil, false, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'moderator')
		ON CONFLICT (user_id, role) DO NOTHING
	`, userID); err != nil {
		return nil, false, fmt.Errorf("failed to assign moderator role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit moderator: %w", err)
	}

	logger.Info("Moderator added", "user_id", userID, "created", created)

	member, err := GetStaffMember(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	return member, created, nil
}

// RemoveStaff revokes every staff role of a user. The last admin cannot be
// removed.
func RemoveStaff(ctx context.Context, userID string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var isAdmin bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role = 'admin')`,
		userID,
	).Scan(&isAdmin); err != nil {
		return fmt.Errorf("failed to check roles: %w", err)
	}

	if isAdmin {
		var admins int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM user_roles WHERE role = 'admin'`).Scan(&admins); err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return ErrCannotRemoveLastAdmin
		}
	}

	command, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to remove staff roles: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit staff removal: %w", err)
	}

	return nil
}

// ChangePassword replaces a user's password after verifying the current one.
func ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	var hash string
	if err := pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	newHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		newHash, userID,
	); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
