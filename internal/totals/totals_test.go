package totals

import (
	"context"
	"testing"

	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/wishlist"
)

func withJunk() wishlist.Collection {
	return append(wishlist.Seed(),
		wishlist.Entry{Key: "1", Record: wishlist.Record{Price: "ask", Pieces: "lots"}},
		wishlist.Entry{Key: "2", Record: wishlist.Record{Price: "0.01", Pieces: "1"}},
	)
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		in   wishlist.Collection
		want int
	}{
		{"nil", nil, 0},
		{"seed", wishlist.Seed(), 3},
		{"unparsable entries count", withJunk(), 5},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Errorf("Count(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestCost(t *testing.T) {
	tests := []struct {
		name string
		in   wishlist.Collection
		want string
	}{
		{"nil", nil, "0"},
		{"seed", wishlist.Seed(), "965.97"},
		{"skips unparsable", withJunk(), "965.98"},
		{"all unparsable", wishlist.Collection{{Key: "x", Record: wishlist.Record{Price: "?"}}}, "0"},
	}
	for _, tt := range tests {
		if got := Cost(tt.in).String(); got != tt.want {
			t.Errorf("Cost(%s) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestPieces(t *testing.T) {
	tests := []struct {
		name string
		in   wishlist.Collection
		want int
	}{
		{"nil", nil, 0},
		{"seed", wishlist.Seed(), 8729},
		{"skips unparsable", withJunk(), 8730},
	}
	for _, tt := range tests {
		if got := Pieces(tt.in); got != tt.want {
			t.Errorf("Pieces(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestWorker(t *testing.T) {
	w := NewWorker()
	ctx := context.Background()

	reply := w.Dispatch(ctx, &protocol.Request{Command: protocol.TotalNumberOfSets, Wishlist: wishlist.Seed()})
	if !reply.OK() || reply.TotalSets == nil || *reply.TotalSets != 3 {
		t.Errorf("count reply = %+v", reply)
	}

	reply = w.Dispatch(ctx, &protocol.Request{Command: protocol.TotalCostOfSets, Wishlist: wishlist.Seed()})
	if !reply.OK() || reply.TotalCost == nil || *reply.TotalCost != 965.97 {
		t.Errorf("cost reply = %+v", reply)
	}

	reply = w.Dispatch(ctx, &protocol.Request{Command: protocol.TotalPiecesOfSets})
	if !reply.OK() || reply.TotalPieces == nil || *reply.TotalPieces != 0 {
		t.Errorf("empty pieces reply = %+v", reply)
	}

	reply = w.Dispatch(ctx, &protocol.Request{Command: protocol.SearchByName})
	if reply.Message != protocol.InvalidCommandMessage {
		t.Errorf("Message = %q, want %q", reply.Message, protocol.InvalidCommandMessage)
	}
}
