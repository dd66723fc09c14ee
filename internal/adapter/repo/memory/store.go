package memory

import (
	"context"
	"sync"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"
	"skyladder/internal/domain/meta"
)

// Store keeps every table in process memory. Repositories share one Store;
// calls made inside TxManager.RunInTx already hold the write lock, other
// calls take the lock themselves.
type Store struct {
	mu          sync.RWMutex
	runs        map[string]ascent.RunState
	saves       map[string]meta.Record
	execution   map[string]ports.IntentExecutionRecord
	events      map[string][]ascent.DomainEvent
	credentials map[string]ports.ProfileCredentialRecord
}

func NewStore() *Store {
	return &Store{
		runs:        make(map[string]ascent.RunState),
		saves:       make(map[string]meta.Record),
		execution:   make(map[string]ports.IntentExecutionRecord),
		events:      make(map[string][]ascent.DomainEvent),
		credentials: make(map[string]ports.ProfileCredentialRecord),
	}
}

type txKeyType struct{}

var txKey = txKeyType{}

func inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey).(bool)
	return held
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

func execKey(profileID, key string) string {
	return profileID + "::" + key
}

func (s *Store) SeedRun(run ascent.RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ProfileID] = run.Clone()
}
