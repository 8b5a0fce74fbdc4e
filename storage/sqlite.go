package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"nlhe-lite/handlog"
)

const defaultLocalDBName = "nlhe_hands.db"

type SQLiteStore struct {
	db  *sql.DB
	log *logrus.Entry
}

func NewSQLiteStoreFromEnv(log *logrus.Logger) (*SQLiteStore, error) {
	dbPath, err := localDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(dbPath, log)
}

func NewSQLiteStore(dbPath string, log *logrus.Logger) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteHandSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SQLiteStore{
		db:  db,
		log: log.WithField("component", "sqlite_store"),
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) SaveHand(ctx context.Context, record *handlog.HandRecord) (string, error) {
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
VALUES (?, ?, ?, ?, ?, ?)
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

func (s *SQLiteStore) LoadHand(ctx context.Context, id string) (*handlog.HandRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
SELECT record
FROM hands
WHERE id = ?
`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return handlog.Decode([]byte(data))
}

func (s *SQLiteStore) ListHands(ctx context.Context) ([]HandSummary, error) {
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

func (s *SQLiteStore) DeleteHand(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM hands WHERE id = ?`, id)
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

func ensureSQLiteHandSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS hands (
    id TEXT PRIMARY KEY,
    hand_name TEXT NOT NULL DEFAULT '',
    table_name TEXT NOT NULL DEFAULT '',
    player_count INTEGER NOT NULL,
    record TEXT NOT NULL,
    saved_at_ms INTEGER NOT NULL
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

func localDatabasePathFromEnv() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("HAND_DATABASE_PATH")),
		strings.TrimSpace(os.Getenv("LOCAL_DATABASE_PATH")),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return filepath.Clean(candidate), nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "nlhe-lite", defaultLocalDBName), nil
}
