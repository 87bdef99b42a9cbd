// Package filtering implements the filter worker: keeping the sets at or
// above an age or piece threshold.
package filtering

import (
	"context"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/wishlist"
	"github.com/msto63/wishbrick/internal/worker"
)

// ByAge keeps the entries whose age group is at least minAge.
func ByAge(c wishlist.Collection, minAge int) wishlist.Collection {
	return keep(c, minAge, func(r wishlist.Record) (int, error) {
		return wishlist.ParseAge(r.AgeGroup)
	})
}

// ByPieces keeps the entries with at least minPieces pieces.
func ByPieces(c wishlist.Collection, minPieces int) wishlist.Collection {
	return keep(c, minPieces, func(r wishlist.Record) (int, error) {
		return wishlist.ParsePieces(r.Pieces)
	})
}

// keep preserves input order; entries whose value does not parse are dropped.
func keep(c wishlist.Collection, min int, value func(wishlist.Record) (int, error)) wishlist.Collection {
	out := wishlist.Collection{}
	for _, e := range c {
		v, err := value(e.Record)
		if err != nil {
			continue
		}
		if v >= min {
			out = append(out, e)
		}
	}
	return out
}

// Register installs the filter commands on w.
func Register(w *worker.Worker) {
	w.Handle(protocol.FilterByAge, func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		if req.MinAge == nil {
			return nil, missing("min_age")
		}
		return protocol.Success().WithWishlist(ByAge(req.Wishlist, *req.MinAge)), nil
	})
	w.Handle(protocol.FilterByPieces, func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		if req.MinPieces == nil {
			return nil, missing("min_pieces")
		}
		return protocol.Success().WithWishlist(ByPieces(req.Wishlist, *req.MinPieces)), nil
	})
}

// NewWorker returns a worker serving the filter commands.
func NewWorker() *worker.Worker {
	w := worker.New("filter")
	Register(w)
	return w
}

func missing(field string) error {
	return wisherror.Newf("Missing %s", field).
		WithCode(wisherror.CodeInvalidInput).
		WithDetail("field", field)
}
