package boltrepo

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"
	"skyladder/internal/domain/meta"
)

type SaveRepo struct {
	store *Store
}

func NewSaveRepo(store *Store) SaveRepo {
	return SaveRepo{store: store}
}

// Load falls back to the default record when the stored payload is corrupt.
func (r SaveRepo) Load(ctx context.Context, profileID string) (meta.Record, error) {
	var rec meta.Record
	err := r.store.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, saveBucket)
		if err != nil {
			return err
		}
		payload := b.Get([]byte(profileID))
		if payload == nil {
			return ports.ErrNotFound
		}
		rec, _ = meta.Decode(payload)
		return nil
	})
	if err != nil {
		return meta.Record{}, err
	}
	return rec, nil
}

func (r SaveRepo) Save(ctx context.Context, profileID string, record meta.Record) error {
	payload, err := meta.Encode(record)
	if err != nil {
		return err
	}
	return r.store.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, saveBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(profileID), payload)
	})
}

type RunRepo struct {
	store *Store
}

func NewRunRepo(store *Store) RunRepo {
	return RunRepo{store: store}
}

func (r RunRepo) GetByProfileID(ctx context.Context, profileID string) (ascent.RunState, error) {
	var run ascent.RunState
	err := r.store.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, runBucket)
		if err != nil {
			return err
		}
		payload := b.Get([]byte(profileID))
		if payload == nil {
			return ports.ErrNotFound
		}
		if err := json.Unmarshal(payload, &run); err != nil {
			return fmt.Errorf("unmarshal run: %w", err)
		}
		return nil
	})
	if err != nil {
		return ascent.RunState{}, err
	}
	return run, nil
}

func (r RunRepo) SaveWithVersion(ctx context.Context, run ascent.RunState, expectedVersion int64) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	return r.store.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, runBucket)
		if err != nil {
			return err
		}
		key := []byte(run.ProfileID)
		if current := b.Get(key); current == nil {
			if expectedVersion != 0 {
				return ports.ErrConflict
			}
		} else {
			var stored struct {
				Version int64 `json:"version"`
			}
			if err := json.Unmarshal(current, &stored); err != nil {
				return fmt.Errorf("unmarshal run: %w", err)
			}
			if stored.Version != expectedVersion {
				return ports.ErrConflict
			}
		}
		return b.Put(key, payload)
	})
}

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

// Append stores events under a per-profile bucket keyed by sequence number.
func (r EventRepo) Append(ctx context.Context, profileID string, events []ascent.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.store.update(ctx, func(tx *bbolt.Tx) error {
		root, err := bucket(tx, eventBucket)
		if err != nil {
			return err
		}
		b, err := root.CreateBucketIfNotExists([]byte(profileID))
		if err != nil {
			return fmt.Errorf("create event bucket: %w", err)
		}
		for _, e := range events {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			payload, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("marshal event: %w", err)
			}
			if err := b.Put(seqKey(seq), payload); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r EventRepo) ListByProfileID(ctx context.Context, profileID string, limit int) ([]ascent.DomainEvent, error) {
	out := []ascent.DomainEvent{}
	err := r.store.view(ctx, func(tx *bbolt.Tx) error {
		root, err := bucket(tx, eventBucket)
		if err != nil {
			return err
		}
		b := root.Bucket([]byte(profileID))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) == limit {
				break
			}
			var e ascent.DomainEvent
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("unmarshal event: %w", err)
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

type IntentExecutionRepo struct {
	store *Store
}

func NewIntentExecutionRepo(store *Store) IntentExecutionRepo {
	return IntentExecutionRepo{store: store}
}

func execKey(profileID, key string) []byte {
	return []byte(profileID + "::" + key)
}

func (r IntentExecutionRepo) GetByIdempotencyKey(ctx context.Context, profileID, key string) (*ports.IntentExecutionRecord, error) {
	var rec ports.IntentExecutionRecord
	err := r.store.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, executionBucket)
		if err != nil {
			return err
		}
		payload := b.Get(execKey(profileID, key))
		if payload == nil {
			return ports.ErrNotFound
		}
		return json.Unmarshal(payload, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r IntentExecutionRepo) SaveExecution(ctx context.Context, execution ports.IntentExecutionRecord) error {
	payload, err := json.Marshal(execution)
	if err != nil {
		return fmt.Errorf("marshal execution: %w", err)
	}
	return r.store.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, executionBucket)
		if err != nil {
			return err
		}
		k := execKey(execution.ProfileID, execution.IdempotencyKey)
		if b.Get(k) != nil {
			return ports.ErrConflict
		}
		return b.Put(k, payload)
	})
}

type ProfileCredentialRepo struct {
	store *Store
}

func NewProfileCredentialRepo(store *Store) ProfileCredentialRepo {
	return ProfileCredentialRepo{store: store}
}

func (r ProfileCredentialRepo) Create(ctx context.Context, credential ports.ProfileCredentialRecord) error {
	payload, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	return r.store.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, credentialBucket)
		if err != nil {
			return err
		}
		k := []byte(credential.ProfileID)
		if b.Get(k) != nil {
			return ports.ErrConflict
		}
		return b.Put(k, payload)
	})
}

func (r ProfileCredentialRepo) GetByProfileID(ctx context.Context, profileID string) (ports.ProfileCredentialRecord, error) {
	var rec ports.ProfileCredentialRecord
	err := r.store.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, credentialBucket)
		if err != nil {
			return err
		}
		payload := b.Get([]byte(profileID))
		if payload == nil {
			return ports.ErrNotFound
		}
		return json.Unmarshal(payload, &rec)
	})
	if err != nil {
		return ports.ProfileCredentialRecord{}, err
	}
	return rec, nil
}
