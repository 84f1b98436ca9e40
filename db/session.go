/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/session"
	"github.com/jackc/pgx/v5"
)

// Session keys shared by the routes and the store.
const (
	SessionKeyAuthenticated = "authenticated"
	SessionKeyUserID        = "user_id"
	SessionKeyUserName      = "user_name"
	SessionKeyVisitorID     = "visitor_id"
)

var errInvalidSessionConfig = errors.New("invalid PostgresSessionConfig")

// PostgresSessionConfig contains options for the PostgreSQL session store
type PostgresSessionConfig struct {
	// Lifetime is the idle duration after which a session expires.
	// Default is 7 days.
	Lifetime time.Duration
	// TableName is the name of the session table. Default is "flamego_sessions".
	TableName string
	// Encoder is the encoder to encode session data. Default is session.GobEncoder.
	Encoder session.Encoder
	// Decoder is the decoder to decode session data. Default is session.GobDecoder.
	Decoder session.Decoder
}

// PostgresSessionStore implements session.Store on top of the shared pool.
type PostgresSessionStore struct {
	config  PostgresSessionConfig
	encoder session.Encoder
	decoder session.Decoder
}

// PostgresSessionIniter returns the Initer for the PostgreSQL session store
func PostgresSessionIniter() session.Initer {
	return func(ctx context.Context, args ...interface{}) (session.Store, error) {
		var config PostgresSessionConfig
		if len(args) > 0 {
			var ok bool
			config, ok = args[0].(PostgresSessionConfig)
			if !ok {
				return nil, errInvalidSessionConfig
			}
		}

		return newPostgresSessionStore(config), nil
	}
}

func newPostgresSessionStore(config PostgresSessionConfig) *PostgresSessionStore {
	if config.Lifetime == 0 {
		config.Lifetime = 7 * 24 * time.Hour
	}
	if config.TableName == "" {
		config.TableName = "flamego_sessions"
	}
	if config.Encoder == nil {
		config.Encoder = session.GobEncoder
	}
	if config.Decoder == nil {
		config.Decoder = session.GobDecoder
	}

	return &PostgresSessionStore{
		config:  config,
		encoder: config.Encoder,
		decoder: config.Decoder,
	}
}

func (s *PostgresSessionStore) table() string {
	return pgx.Identifier{s.config.TableName}.Sanitize()
}

// Exist returns true if the session with given ID exists and hasn't expired
func (s *PostgresSessionStore) Exist(ctx context.Context, sid string) bool {
	if pool == nil {
		return false
	}

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+s.table()+` WHERE id = $1 AND expires_at > NOW())`,
		sid,
	).Scan(&exists)

	return err == nil && exists
}

// Read returns the session with the given ID, or a fresh session with that
// ID when none is stored or the stored data cannot be decoded.
func (s *PostgresSessionStore) Read(ctx context.Context, sid string) (session.Session, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var data []byte
	err := pool.QueryRow(ctx,
		`SELECT data FROM `+s.table()+` WHERE id = $1 AND expires_at > NOW()`,
		sid,
	).Scan(&data)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	// The session middleware writes the cookie itself.
	idWriter := func(http.ResponseWriter, *http.Request, string) {}

	if errors.Is(err, pgx.ErrNoRows) || len(data) == 0 {
		return session.NewBaseSession(sid, s.encoder, idWriter), nil
	}

	sessionData, err := s.decoder(data)
	if err != nil {
		logger.Warn("Discarding undecodable session", "error", err)
		return session.NewBaseSession(sid, s.encoder, idWriter), nil
	}

	return session.NewBaseSessionWithData(sid, s.encoder, idWriter, sessionData), nil
}

// Destroy deletes session with given ID from the session store completely
func (s *PostgresSessionStore) Destroy(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := pool.Exec(ctx, `DELETE FROM `+s.table()+` WHERE id = $1`, sid); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// Touch updates the expiry time of the session with given ID
func (s *PostgresSessionStore) Touch(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := pool.Exec(ctx,
		`UPDATE `+s.table()+` SET expires_at = $1 WHERE id = $2`,
		time.Now().Add(s.config.Lifetime),
		sid,
	); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	return nil
}

// Save persists session data to the session store
func (s *PostgresSessionStore) Save(ctx context.Context, sess session.Session) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	data, err := sess.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO `+s.table()+` (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at`,
		sess.ID(),
		data,
		time.Now().Add(s.config.Lifetime),
	); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GC removes expired sessions.
func (s *PostgresSessionStore) GC(ctx context.Context) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := pool.Exec(ctx, `DELETE FROM `+s.table()+` WHERE expires_at < NOW()`); err != nil {
		return fmt.Errorf("failed to collect sessions: %w", err)
	}

	return nil
}

// DestroyUserSessions deletes every live session authenticated as userID.
// It is used when a staff member loses access or changes their password.
// The session with keepID, if any, is preserved.
func (s *PostgresSessionStore) DestroyUserSessions(ctx context.Context, userID, keepID string) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `SELECT id, data FROM `+s.table()+` WHERE expires_at > NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	var targets []string

	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan session: %w", err)
		}

		if id == keepID {
			continue
		}

		decoded, err := s.decoder(data)
		if err != nil {
			continue
		}

		if owner, ok := decoded[SessionKeyUserID].(string); ok && owner == userID {
			targets = append(targets, id)
		}
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating sessions: %w", err)
	}

	if len(targets) == 0 {
		return 0, nil
	}

	command, err := pool.Exec(ctx, `DELETE FROM `+s.table()+` WHERE id = ANY($1)`, targets)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}

	return int(command.RowsAffected()), nil
}

// SessionStore returns a store with default settings for callers outside
// the session middleware.
func SessionStore() *PostgresSessionStore {
	return newPostgresSessionStore(PostgresSessionConfig{})
}
