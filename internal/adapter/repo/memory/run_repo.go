package memory

import (
	"context"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"
)

type RunRepo struct {
	store *Store
}

func NewRunRepo(store *Store) RunRepo {
	return RunRepo{store: store}
}

func (r RunRepo) GetByProfileID(ctx context.Context, profileID string) (ascent.RunState, error) {
	var (
		run ascent.RunState
		ok  bool
	)
	r.store.read(ctx, func() {
		run, ok = r.store.runs[profileID]
		if ok {
			run = run.Clone()
		}
	})
	if !ok {
		return ascent.RunState{}, ports.ErrNotFound
	}
	return run, nil
}

func (r RunRepo) SaveWithVersion(ctx context.Context, run ascent.RunState, expectedVersion int64) error {
	var err error
	r.store.write(ctx, func() {
		current, ok := r.store.runs[run.ProfileID]
		switch {
		case !ok && expectedVersion != 0:
			err = ports.ErrConflict
		case ok && current.Version != expectedVersion:
			err = ports.ErrConflict
		default:
			r.store.runs[run.ProfileID] = run.Clone()
		}
	})
	return err
}
