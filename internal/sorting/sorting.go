// Package sorting implements the sort worker: ordering a wishlist by price.
package sorting

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/wishlist"
	"github.com/msto63/wishbrick/internal/worker"
)

// Direction is the price order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "high to low"
	}
	return "low to high"
}

// Command returns the wire command for d.
func (d Direction) Command() protocol.Command {
	if d == Descending {
		return protocol.SortHighToLow
	}
	return protocol.SortLowToHigh
}

// ByPrice returns a copy of c ordered by numeric price. Equal prices keep
// their input order. Prices are rewritten in canonical decimal form, so
// "15.90" comes back as "15.9". Any unparsable price fails the whole sort.
func ByPrice(c wishlist.Collection, dir Direction) (wishlist.Collection, error) {
	prices := make([]decimal.Decimal, len(c))
	for i, e := range c {
		p, err := wishlist.ParsePrice(e.Record.Price)
		if err != nil {
			return nil, wisherror.Wrap(err, fmt.Sprintf("cannot sort: LEGO set %s has an invalid price", e.Key)).
				WithOperation("sorting.ByPrice").
				WithDetail("set_number", e.Key)
		}
		prices[i] = p
	}

	idx := make([]int, len(c))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		cmp := prices[idx[a]].Cmp(prices[idx[b]])
		if dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	out := make(wishlist.Collection, len(c))
	for i, j := range idx {
		e := c[j]
		e.Record.Price = prices[j].String()
		out[i] = e
	}
	return out, nil
}

// Register installs the sort commands on w.
func Register(w *worker.Worker) {
	w.Handle(protocol.SortLowToHigh, handler(Ascending))
	w.Handle(protocol.SortHighToLow, handler(Descending))
}

// NewWorker returns a worker serving the sort commands.
func NewWorker() *worker.Worker {
	w := worker.New("sort")
	Register(w)
	return w
}

func handler(dir Direction) worker.HandlerFunc {
	return func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		sorted, err := ByPrice(req.Wishlist, dir)
		if err != nil {
			return nil, err
		}
		return protocol.Success().WithWishlist(sorted), nil
	}
}
