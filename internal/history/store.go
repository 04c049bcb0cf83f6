// Package history persists a log of served requests so usage can be inspected
// with the admin stats command.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"astrobot/core/logger"
)

// Request is one served user request.
type Request struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	UserID    int64     `db:"user_id"`
	Command   string    `db:"command"`
	Rover     string    `db:"rover"`
	Date      string    `db:"date"`
	Query     string    `db:"query"`
	CreatedAt time.Time `db:"created_at"`
}

// CommandCount is the total number of requests served per command.
type CommandCount struct {
	Command string `db:"command"`
	Total   int64  `db:"total"`
}

// Store reads and writes the request log.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const insertRequest = `
INSERT INTO requests (chat_id, user_id, command, rover, date, query, created_at)
VALUES (:chat_id, :user_id, :command, :rover, :date, :query, :created_at)`

// Record appends one served request to the log. Failures are logged and
// swallowed; the request log must never break a delivery.
func (s *Store) Record(ctx context.Context, req Request) {
	if s == nil || s.db == nil {
		return
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	if _, err := s.db.NamedExecContext(ctx, insertRequest, req); err != nil {
		logger.Error(ctx, "service.history", "record.fail",
			slog.String("command", req.Command),
			slog.String("err", err.Error()),
		)
	}
}

const selectTotals = `
SELECT command, COUNT(*) AS total
FROM requests
GROUP BY command
ORDER BY total DESC, command`

// CommandTotals returns how many requests each command has served, busiest
// first.
func (s *Store) CommandTotals(ctx context.Context) ([]CommandCount, error) {
	var totals []CommandCount
	if err := s.db.SelectContext(ctx, &totals, selectTotals); err != nil {
		return nil, err
	}
	return totals, nil
}
