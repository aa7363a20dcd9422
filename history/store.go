// Package history journals learner sessions and every line exchanged with
// them, so past training runs and predictions can be inspected after the
// learner process is gone.
package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/wabbit/db"
	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/logger"
	"github.com/teranos/wabbit/vw/wire"
)

// Store persists sessions and exchanges to SQLite.
type Store struct {
	db *sql.DB
}

// Session is one learner process lifetime.
type Session struct {
	ID        string
	Command   string
	StartedAt time.Time
	EndedAt   *time.Time
	Exchanges int
}

// Exchange is one line sent to the learner and what came back.
type Exchange struct {
	ID         int64
	SessionID  string
	Line       string
	Response   string
	Kind       wire.ResultKind
	Scalar     *float64
	DurationMS int64
	CreatedAt  time.Time
}

// NewStore wraps an open database. The caller owns the connection.
func NewStore(sqlDB *sql.DB) *Store {
	return &Store{db: sqlDB}
}

// Open opens (and migrates) the history database at path.
func Open(path string) (*Store, error) {
	sqlDB, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return nil, err
	}
	return NewStore(sqlDB), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginSession records the start of a learner process and returns its ID.
func (s *Store) BeginSession(command string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, command) VALUES (?, ?)",
		id, command,
	)
	if err != nil {
		if db.IsDatabaseClosed(err) {
			return "", db.ErrDatabaseClosed
		}
		return "", errors.Wrap(err, "begin history session")
	}
	logger.DBInfow("History session started", logger.FieldSessionID, id)
	return id, nil
}

// EndSession marks a session as finished.
func (s *Store) EndSession(id string) error {
	_, err := s.db.Exec(
		"UPDATE sessions SET ended_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		if db.IsDatabaseClosed(err) {
			return db.ErrDatabaseClosed
		}
		return errors.Wrapf(err, "end history session %s", id)
	}
	return nil
}

// RecordExchange journals one request/response pair.
func (s *Store) RecordExchange(sessionID, line, raw string, result wire.Result, duration time.Duration) error {
	var scalar *float64
	if result.Kind == wire.KindScalar {
		v := result.Scalar
		scalar = &v
	}
	_, err := s.db.Exec(
		"INSERT INTO exchanges (session_id, line, response, kind, scalar, duration_ms) VALUES (?, ?, ?, ?, ?, ?)",
		sessionID, line, raw, result.Kind.String(), scalar, duration.Milliseconds(),
	)
	if err != nil {
		if db.IsDatabaseClosed(err) {
			return db.ErrDatabaseClosed
		}
		return errors.Wrap(err, "record exchange")
	}
	return nil
}

// RecentExchanges returns the newest exchanges, most recent first. A zero or
// negative limit defaults to 20.
func (s *Store) RecentExchanges(limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, line, response, kind, scalar, duration_ms, created_at
		 FROM exchanges ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query exchanges")
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		var (
			e    Exchange
			kind string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Line, &e.Response, &kind, &e.Scalar, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan exchange")
		}
		e.Kind = parseKind(kind)
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "iterate exchanges")
}

// Sessions returns all recorded sessions with their exchange counts, newest
// first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.command, s.started_at, s.ended_at, COUNT(e.id)
		 FROM sessions s LEFT JOIN exchanges e ON e.session_id = s.id
		 GROUP BY s.id ORDER BY s.started_at DESC`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query sessions")
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Command, &sess.StartedAt, &sess.EndedAt, &sess.Exchanges); err != nil {
			return nil, errors.Wrap(err, "scan session")
		}
		out = append(out, sess)
	}
	return out, errors.Wrap(rows.Err(), "iterate sessions")
}

func parseKind(s string) wire.ResultKind {
	switch s {
	case wire.KindScalar.String():
		return wire.KindScalar
	case wire.KindVector.String():
		return wire.KindVector
	default:
		return wire.KindText
	}
}
