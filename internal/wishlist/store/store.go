// Package store holds the session's wishlist: an ordered mapping from set
// number to record, owned by the interactive client.
package store

import (
	"context"
	"iter"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/wishlist"
)

// Store defines the record store operations
type Store interface {
	// Put inserts or overwrites key. An overwritten entry keeps its position.
	Put(ctx context.Context, key string, rec wishlist.Record) error
	// Update applies the non-empty fields of partial to key.
	Update(ctx context.Context, key string, partial wishlist.Record) error
	Delete(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (wishlist.Record, error)
	// All yields the entries in insertion order. Ranging again starts over.
	All(ctx context.Context) iter.Seq2[wishlist.Entry, error]
	Len(ctx context.Context) (int, error)
	// Snapshot copies the entries in insertion order.
	Snapshot(ctx context.Context) (wishlist.Collection, error)
	Close() error
}

// Drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// New opens a store for driver, seeded with seed.
func New(ctx context.Context, driver string, seed wishlist.Collection) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case DriverMemory, "":
		s = NewMemory()
	case DriverSQLite:
		s, err = NewSQLite()
	default:
		return nil, wisherror.Newf("unknown store driver %q", driver).WithCode(wisherror.CodeConfigError)
	}
	if err != nil {
		return nil, err
	}

	for _, e := range seed {
		if err := s.Put(ctx, e.Key, e.Record); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

func notFound(op, key string) error {
	return wisherror.Newf("set %s not found", key).
		WithCode(wisherror.CodeNotFound).
		WithOperation(op).
		WithDetail("key", key)
}

// IsNotFound reports whether err means the key was absent.
func IsNotFound(err error) bool {
	return wisherror.HasCode(err, wisherror.CodeNotFound)
}

// Collect drains All into a collection.
func Collect(seq iter.Seq2[wishlist.Entry, error]) (wishlist.Collection, error) {
	out := wishlist.Collection{}
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
