// Package storage persists finished and in-progress hand records.
package storage

import (
	"context"
	"errors"
	"time"

	"nlhe-lite/handlog"
)

var (
	ErrNotFound        = errors.New("storage: hand not found")
	ErrHandNotFinished = errors.New("storage: hand has no showdown stacks")
)

// HandSummary is the listing row for a stored hand.
type HandSummary struct {
	ID          string
	HandName    string
	TableName   string
	PlayerCount int
	SavedAt     time.Time
}

// Store keeps hand records by id. Implementations are safe for concurrent
// use.
type Store interface {
	// SaveHand stores a finished record and returns its generated id.
	// Records without showdown stacks are rejected.
	SaveHand(ctx context.Context, record *handlog.HandRecord) (string, error)
	// LoadHand fetches a record by id.
	LoadHand(ctx context.Context, id string) (*handlog.HandRecord, error)
	// ListHands returns summaries, most recently saved first.
	ListHands(ctx context.Context) ([]HandSummary, error)
	// DeleteHand removes a record by id.
	DeleteHand(ctx context.Context, id string) error
	Close() error
}
