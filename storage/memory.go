package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"nlhe-lite/handlog"
)

// MemoryStore is the in-process store used by tests and by servers running
// without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	hands map[string]memoryHand
}

type memoryHand struct {
	summary HandSummary
	data    []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hands: make(map[string]memoryHand)}
}

func (s *MemoryStore) SaveHand(_ context.Context, record *handlog.HandRecord) (string, error) {
	if record.ShowdownStacks == nil {
		return "", ErrHandNotFinished
	}
	data, err := handlog.Encode(record)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hands[id] = memoryHand{
		summary: HandSummary{
			ID:          id,
			HandName:    record.HandName,
			TableName:   record.TableName,
			PlayerCount: len(record.Players),
			SavedAt:     time.Now().UTC(),
		},
		data: data,
	}
	return id, nil
}

func (s *MemoryStore) LoadHand(_ context.Context, id string) (*handlog.HandRecord, error) {
	s.mu.RLock()
	hand, ok := s.hands[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return handlog.Decode(hand.data)
}

func (s *MemoryStore) ListHands(_ context.Context) ([]HandSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]HandSummary, 0, len(s.hands))
	for _, hand := range s.hands {
		summaries = append(summaries, hand.summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].SavedAt.Equal(summaries[j].SavedAt) {
			return summaries[i].SavedAt.After(summaries[j].SavedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func (s *MemoryStore) DeleteHand(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hands[id]; !ok {
		return ErrNotFound
	}
	delete(s.hands, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
