package memory

import (
	"context"

	"skyladder/internal/domain/ascent"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, profileID string, events []ascent.DomainEvent) error {
	r.store.write(ctx, func() {
		r.store.events[profileID] = append(r.store.events[profileID], events...)
	})
	return nil
}

// ListByProfileID returns the newest events first.
func (r EventRepo) ListByProfileID(ctx context.Context, profileID string, limit int) ([]ascent.DomainEvent, error) {
	var out []ascent.DomainEvent
	r.store.read(ctx, func() {
		all := r.store.events[profileID]
		out = make([]ascent.DomainEvent, 0, len(all))
		for i := len(all) - 1; i >= 0; i-- {
			if limit > 0 && len(out) == limit {
				break
			}
			out = append(out, all[i])
		}
	})
	return out, nil
}
