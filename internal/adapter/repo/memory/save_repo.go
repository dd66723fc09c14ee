package memory

import (
	"context"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/meta"
)

type SaveRepo struct {
	store *Store
}

func NewSaveRepo(store *Store) SaveRepo {
	return SaveRepo{store: store}
}

func (r SaveRepo) Load(ctx context.Context, profileID string) (meta.Record, error) {
	var (
		rec meta.Record
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.saves[profileID]
		if ok {
			rec = rec.Clone()
		}
	})
	if !ok {
		return meta.Record{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r SaveRepo) Save(ctx context.Context, profileID string, record meta.Record) error {
	r.store.write(ctx, func() {
		r.store.saves[profileID] = record.Clone()
	})
	return nil
}
