// Package totals implements the totals worker: set count, total cost and
// total pieces of a wishlist.
package totals

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/wishlist"
	"github.com/msto63/wishbrick/internal/worker"
)

// Count returns the number of sets.
func Count(c wishlist.Collection) int {
	return len(c)
}

// Cost sums the parsable prices. Unparsable prices are skipped.
func Cost(c wishlist.Collection) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range c {
		p, err := wishlist.ParsePrice(e.Record.Price)
		if err != nil {
			continue
		}
		sum = sum.Add(p)
	}
	return sum
}

// Pieces sums the parsable piece counts. Unparsable counts are skipped.
func Pieces(c wishlist.Collection) int {
	sum := 0
	for _, e := range c {
		n, err := wishlist.ParsePieces(e.Record.Pieces)
		if err != nil {
			continue
		}
		sum += n
	}
	return sum
}

// Register installs the totals commands on w.
func Register(w *worker.Worker) {
	w.Handle(protocol.TotalNumberOfSets, func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		reply := protocol.Success()
		reply.TotalSets = protocol.Int(Count(req.Wishlist))
		return reply, nil
	})
	w.Handle(protocol.TotalCostOfSets, func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		// JSON numbers carry the sum; the client reads it back as a decimal.
		cost := Cost(req.Wishlist).InexactFloat64()
		reply := protocol.Success()
		reply.TotalCost = &cost
		return reply, nil
	})
	w.Handle(protocol.TotalPiecesOfSets, func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		reply := protocol.Success()
		reply.TotalPieces = protocol.Int(Pieces(req.Wishlist))
		return reply, nil
	})
}

// NewWorker returns a worker serving the totals commands.
func NewWorker() *worker.Worker {
	w := worker.New("totals")
	Register(w)
	return w
}
