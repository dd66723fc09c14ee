package memory

import (
	"context"

	"skyladder/internal/app/ports"
)

type IntentExecutionRepo struct {
	store *Store
}

func NewIntentExecutionRepo(store *Store) IntentExecutionRepo {
	return IntentExecutionRepo{store: store}
}

func (r IntentExecutionRepo) GetByIdempotencyKey(ctx context.Context, profileID, key string) (*ports.IntentExecutionRecord, error) {
	var (
		rec ports.IntentExecutionRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.execution[execKey(profileID, key)]
	})
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r IntentExecutionRepo) SaveExecution(ctx context.Context, execution ports.IntentExecutionRecord) error {
	var err error
	r.store.write(ctx, func() {
		k := execKey(execution.ProfileID, execution.IdempotencyKey)
		if _, exists := r.store.execution[k]; exists {
			err = ports.ErrConflict
			return
		}
		r.store.execution[k] = execution
	})
	return err
}
