// Package store keeps the two persisted namespaces of countrytap, the
// signed-in user and the favorite country codes, as JSON values on top of a
// metadata.Repository.
//
// Corrupted values never surface as errors: they are logged as
// ErrStorageDecode and read as absent so callers fall back to an empty,
// signed-out state.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/countrytap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/countrytap/internal/dbx"
	"github.com/dmitrijs2005/countrytap/internal/logging"
)

// Namespace is a fixed storage key.
type Namespace string

const (
	NamespaceUser      Namespace = "rest_countries_user"
	NamespaceFavorites Namespace = "rest_countries_favorites"
)

var ErrStorageDecode = errors.New("stored value cannot be decoded")

// Store is safe for concurrent use. Writes from one process are serialized;
// across processes the last write wins.
type Store struct {
	repo metadata.Repository
	log  logging.Logger

	mu   sync.Mutex
	db   dbx.TxBeginner
	bind func(dbx.DBTX) metadata.Repository
}

type Option func(*Store)

// WithSQLTx makes Update run inside a database transaction. bind builds a
// repository over the transaction handle.
func WithSQLTx(db dbx.TxBeginner, bind func(dbx.DBTX) metadata.Repository) Option {
	return func(s *Store) {
		s.db = db
		s.bind = bind
	}
}

func New(repo metadata.Repository, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.Discard()
	}
	s := &Store{repo: repo, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read decodes the value of ns into dst. found is false when the value is
// absent or corrupted; dst is then left in an unspecified state.
func (s *Store) Read(ctx context.Context, ns Namespace, dst any) (bool, error) {
	raw, err := s.repo.Get(ctx, string(ns))
	if err != nil {
		return false, err
	}
	return s.decode(ctx, ns, raw, dst), nil
}

func (s *Store) Write(ctx context.Context, ns Namespace, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ns, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Set(ctx, string(ns), raw)
}

func (s *Store) Clear(ctx context.Context, ns Namespace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, string(ns))
}

func (s *Store) decode(ctx context.Context, ns Namespace, raw []byte, dst any) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn(ctx, "discarding stored value",
			"namespace", string(ns), "error", fmt.Errorf("%w: %w", ErrStorageDecode, err))
		return false
	}
	return true
}

func (s *Store) inTx(ctx context.Context, fn func(ctx context.Context, repo metadata.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fn(ctx, s.repo)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.bind(tx))
	})
}

// Update performs a read-modify-write of ns. fn receives the current value
// (zero and found=false when absent or corrupted) and returns the value to
// store. An error from fn aborts the update.
func Update[T any](ctx context.Context, s *Store, ns Namespace, fn func(cur T, found bool) (T, error)) error {
	return s.inTx(ctx, func(ctx context.Context, repo metadata.Repository) error {
		raw, err := repo.Get(ctx, string(ns))
		if err != nil {
			return err
		}

		var cur T
		found := s.decode(ctx, ns, raw, &cur)
		if !found {
			var zero T
			cur = zero
		}

		next, err := fn(cur, found)
		if err != nil {
			return err
		}

		out, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", ns, err)
		}
		return repo.Set(ctx, string(ns), out)
	})
}
