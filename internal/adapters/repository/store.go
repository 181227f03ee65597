// Package repository holds per-player state for a single run.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/teambalancer/internal/domain/model"
)

// Store provides read/write access to the per-run player state.
type Store interface {
	// AddPlayer inserts a player with an empty history. Adding an existing
	// name is a no-op; history already set is kept.
	AddPlayer(ctx context.Context, name string)
	// SetHistory stores a non-empty, oldest-first history.
	SetHistory(ctx context.Context, name string, history []model.RankRecord) error
	// SetScore stores the derived score; history must already be set.
	SetScore(ctx context.Context, name string, score model.Score) error
	// RemovePlayer drops a player, reporting whether it existed.
	RemovePlayer(ctx context.Context, name string) bool
	// SetMedianScore stores the group statistic.
	SetMedianScore(ctx context.Context, v float64)
	// Names returns player names in insertion order.
	Names(ctx context.Context) []string
	// Count returns the number of players.
	Count(ctx context.Context) int
	// Snapshot returns a deep copy for serialization. Every player must be scored.
	Snapshot(ctx context.Context) (model.Cohort, error)
}

type entry struct {
	player model.Player
	scored bool
}

// MemoryStore is the in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	runID   string
	players map[string]*entry
	order   []string
	median  float64
	skipped []string
}

// NewMemoryStore creates an empty store tagged with a run id.
func NewMemoryStore(runID string) *MemoryStore {
	return &MemoryStore{
		runID:   runID,
		players: make(map[string]*entry),
	}
}

func (s *MemoryStore) AddPlayer(_ context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[name]; ok {
		return
	}
	s.players[name] = &entry{player: model.Player{ID: name}}
	s.order = append(s.order, name)
}

func (s *MemoryStore) SetHistory(_ context.Context, name string, history []model.RankRecord) error {
	if len(history) == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyHistory)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.players[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownPlayer)
	}
	h := make([]model.RankRecord, len(history))
	copy(h, history)
	e.player.History = h
	e.player.Current = h[len(h)-1]
	return nil
}

func (s *MemoryStore) SetScore(_ context.Context, name string, score model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.players[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownPlayer)
	}
	if len(e.player.History) == 0 {
		return fmt.Errorf("%s: %w", name, ErrHistoryNotSet)
	}
	e.player.Score = score
	e.scored = true
	return nil
}

// RemovePlayer also records the name as skipped in later snapshots.
func (s *MemoryStore) RemovePlayer(_ context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[name]; !ok {
		return false
	}
	delete(s.players, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.skipped = append(s.skipped, name)
	return true
}

func (s *MemoryStore) SetMedianScore(_ context.Context, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.median = v
}

func (s *MemoryStore) Names(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *MemoryStore) Snapshot(_ context.Context) (model.Cohort, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := model.Cohort{
		RunID:       s.runID,
		Players:     make(map[string]model.Player, len(s.players)),
		Count:       len(s.players),
		MedianScore: s.median,
	}
	for name, e := range s.players {
		if !e.scored {
			return model.Cohort{}, fmt.Errorf("%s: %w", name, ErrNotScored)
		}
		p := e.player
		p.History = make([]model.RankRecord, len(e.player.History))
		copy(p.History, e.player.History)
		c.Players[name] = p
	}
	if len(s.skipped) > 0 {
		c.Skipped = make([]string, len(s.skipped))
		copy(c.Skipped, s.skipped)
	}
	return c, nil
}
