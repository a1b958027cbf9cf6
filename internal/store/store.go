package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

type Store struct {
	db *sql.DB
}

// Open connects to MySQL and applies pending migrations. The audit store is
// optional; callers skip Open entirely when no DSN is configured.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// ProbeLog is one audit row per upstream call. Credentials (API key, MCP
// authorization blob) are deliberately absent from the schema.
type ProbeLog struct {
	ID            string `json:"id"`
	Mode          string `json:"mode"`
	Model         string `json:"model"`
	PromptBytes   int    `json:"prompt_bytes"`
	Status        int    `json:"status"`
	LatencyMs     int64  `json:"latency_ms"`
	ResponseBytes int    `json:"response_bytes"`
	Error         string `json:"error,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

func (s *Store) InsertProbeLog(ctx context.Context, l ProbeLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO probe_logs (id, mode, model, prompt_bytes, status, latency_ms, response_bytes, error_msg)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Mode, l.Model, l.PromptBytes, l.Status, l.LatencyMs, l.ResponseBytes, l.Error)
	return err
}

func (s *Store) RecentProbeLogs(ctx context.Context, limit int) ([]ProbeLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, model, prompt_bytes, status, latency_ms, response_bytes, error_msg, ts
		 FROM probe_logs ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ProbeLog{}
	for rows.Next() {
		var (
			l      ProbeLog
			errMsg sql.NullString
			ts     time.Time
		)
		if err := rows.Scan(&l.ID, &l.Mode, &l.Model, &l.PromptBytes, &l.Status, &l.LatencyMs, &l.ResponseBytes, &errMsg, &ts); err != nil {
			return nil, err
		}
		l.Error = errMsg.String
		l.CreatedAt = ts.Format(time.RFC3339)
		out = append(out, l)
	}
	return out, rows.Err()
}
