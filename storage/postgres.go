package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"nlhe-lite/handlog"
)

type PostgresStore struct {
	db  *sql.DB
	log *logrus.Entry
}

func NewPostgresStoreFromEnv(log *logrus.Logger) (*PostgresStore, error) {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	return NewPostgresStore(dsn, log)
}

func NewPostgresStore(dsn string, log *logrus.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensurePostgresHandSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PostgresStore{
		db:  db,
		log: log.WithField("component", "postgres_store"),
	}, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) SaveHand(ctx context.Context, record *handlog.HandRecord) (string, error) {
	if record.ShowdownStacks == nil {
		return "", ErrHandNotFinished
	}
	data, err := handlog.Encode(record)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	nowMs := time.Now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO hands (
    id, hand_name, table_name, player_count, record, saved_at_ms
)
VALUES ($1, $2, $3, $4, $5, $6)
`, id, record.HandName, record.TableName, len(record.Players), string(data), nowMs)
	if err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{
		"hand_id": id,
		"players": len(record.Players),
	}).Debug("saved hand")
	return id, nil
}

func (s *PostgresStore) LoadHand(ctx context.Context, id string) (*handlog.HandRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
SELECT record
FROM hands
WHERE id = $1
`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return handlog.Decode([]byte(data))
}

func (s *PostgresStore) ListHands(ctx context.Context) ([]HandSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, hand_name, table_name, player_count, saved_at_ms
FROM hands
ORDER BY saved_at_ms DESC, id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []HandSummary
	for rows.Next() {
		var summary HandSummary
		var savedAtMs int64
		if err := rows.Scan(
			&summary.ID, &summary.HandName, &summary.TableName,
			&summary.PlayerCount, &savedAtMs,
		); err != nil {
			return nil, err
		}
		summary.SavedAt = time.UnixMilli(savedAtMs).UTC()
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *PostgresStore) DeleteHand(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM hands WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func ensurePostgresHandSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS hands (
    id TEXT PRIMARY KEY,
    hand_name TEXT NOT NULL DEFAULT '',
    table_name TEXT NOT NULL DEFAULT '',
    player_count INTEGER NOT NULL,
    record TEXT NOT NULL,
    saved_at_ms BIGINT NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_hands_saved_at ON hands(saved_at_ms DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_hands_table_name ON hands(table_name)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
