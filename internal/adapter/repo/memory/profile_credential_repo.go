package memory

import (
	"context"

	"skyladder/internal/app/ports"
)

type ProfileCredentialRepo struct {
	store *Store
}

func NewProfileCredentialRepo(store *Store) ProfileCredentialRepo {
	return ProfileCredentialRepo{store: store}
}

func (r ProfileCredentialRepo) Create(ctx context.Context, credential ports.ProfileCredentialRecord) error {
	var err error
	r.store.write(ctx, func() {
		if _, exists := r.store.credentials[credential.ProfileID]; exists {
			err = ports.ErrConflict
			return
		}
		r.store.credentials[credential.ProfileID] = credential
	})
	return err
}

func (r ProfileCredentialRepo) GetByProfileID(ctx context.Context, profileID string) (ports.ProfileCredentialRecord, error) {
	var (
		rec ports.ProfileCredentialRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.credentials[profileID]
	})
	if !ok {
		return ports.ProfileCredentialRecord{}, ports.ErrNotFound
	}
	return rec, nil
}
