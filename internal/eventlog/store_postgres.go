package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"hireflow/pkg/platform/sentinel"
)

// PostgresStore is the transactional backend: one `events` table holds both
// streams, with a bigserial sequence providing total append order per stream
// and atomic single-row inserts replacing the read-modify-write cycle of
// file-backed logs.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id          UUID PRIMARY KEY,
    stream      TEXT NOT NULL,
    seq         BIGSERIAL,
    data        JSONB NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_stream_seq_idx ON events (stream, seq);
`

// EnsureSchema creates the events table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure events schema: %w (%w)", err, sentinel.ErrUnavailable)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, stream Stream, rec Record) error {
	// Persist the full column set so empty optional fields survive the
	// round trip exactly as the tabular stores would keep them.
	full := make(Record, len(stream.Columns))
	for _, col := range stream.Columns {
		full[col] = rec[col]
	}
	data, err := json.Marshal(full)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO events (id, stream, data) VALUES ($1, $2, $3)`,
		uuid.New(), stream.Name, data,
	)
	if err != nil {
		return fmt.Errorf("append to %s: %w (%w)", stream.Name, err, sentinel.ErrUnavailable)
	}
	return nil
}

func (s *PostgresStore) ReadAll(ctx context.Context, stream Stream) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM events WHERE stream = $1 ORDER BY seq`,
		stream.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w (%w)", stream.Name, err, sentinel.ErrUnavailable)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s row: %w (%w)", stream.Name, err, sentinel.ErrUnavailable)
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", stream.Name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w (%w)", stream.Name, err, sentinel.ErrUnavailable)
	}
	return out, nil
}
