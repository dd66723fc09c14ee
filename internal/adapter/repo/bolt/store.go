// Package boltrepo keeps a single-file save slot in BoltDB. It backs every
// repository port so a local player needs no database server.
package boltrepo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const (
	saveBucket       = "saves"
	runBucket        = "runs"
	eventBucket      = "events"
	executionBucket  = "executions"
	credentialBucket = "credentials"
)

var buckets = []string{saveBucket, runBucket, eventBucket, executionBucket, credentialBucket}

// Store wraps the BoltDB handle shared by the repositories.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the save slot at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("save slot path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open save slot: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

type txKeyType struct{}

var txKey = txKeyType{}

func txFromCtx(ctx context.Context) *bbolt.Tx {
	tx, _ := ctx.Value(txKey).(*bbolt.Tx)
	return tx
}

// view runs fn inside the transaction carried by ctx, or a fresh read-only one.
func (s *Store) view(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx := txFromCtx(ctx); tx != nil {
		return fn(tx)
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx := txFromCtx(ctx); tx != nil {
		if !tx.Writable() {
			return fmt.Errorf("save slot transaction is read-only")
		}
		return fn(tx)
	}
	return s.db.Update(fn)
}

func bucket(tx *bbolt.Tx, name string) (*bbolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("%s bucket is missing", name)
	}
	return b, nil
}

// TxManager runs the callback in a single read-write BoltDB transaction.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromCtx(ctx) != nil {
		return fn(ctx)
	}
	return t.store.db.Update(func(tx *bbolt.Tx) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}
