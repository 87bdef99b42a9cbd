package filtering

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/wishlist"
)

func sets() wishlist.Collection {
	return append(wishlist.Seed(),
		wishlist.Entry{Key: "21348", Record: wishlist.Record{Name: "Dungeons & Dragons", AgeGroup: "18 +", Pieces: "3745"}},
		wishlist.Entry{Key: "10497", Record: wishlist.Record{Name: "Galaxy Explorer", AgeGroup: "adults", Pieces: "many"}},
	)
}

func keys(c wishlist.Collection) string {
	return strings.Join(c.Keys(), ",")
}

func TestByAge(t *testing.T) {
	tests := []struct {
		min  int
		want string
	}{
		{0, "75192,75370,75379,21348"},
		{10, "75192,75379,21348"},
		{16, "75192,21348"},
		{17, "21348"},
		{99, ""},
	}

	for _, tt := range tests {
		got := ByAge(sets(), tt.min)
		if keys(got) != tt.want {
			t.Errorf("ByAge(%d) = %s, want %s", tt.min, keys(got), tt.want)
		}
	}
}

func TestByPieces(t *testing.T) {
	tests := []struct {
		min  int
		want string
	}{
		{0, "75192,75370,75379,21348"},
		{138, "75192,75370,75379,21348"},
		{139, "75192,75379,21348"},
		{5000, "75192"},
	}

	for _, tt := range tests {
		got := ByPieces(sets(), tt.min)
		if keys(got) != tt.want {
			t.Errorf("ByPieces(%d) = %s, want %s", tt.min, keys(got), tt.want)
		}
	}
}

func TestFilterKeepsRecords(t *testing.T) {
	got := ByAge(wishlist.Seed(), 16)
	want, _ := wishlist.Seed().Get("75192")
	if len(got) != 1 || got[0].Record != want {
		t.Errorf("ByAge() = %+v, want the full Millennium Falcon record", got)
	}
}

func TestWorker(t *testing.T) {
	w := NewWorker()
	ctx := context.Background()

	tests := []struct {
		name       string
		req        *protocol.Request
		wantStatus string
		wantKeys   string
	}{
		{"by age", &protocol.Request{Command: protocol.FilterByAge, Wishlist: sets(), MinAge: protocol.Int(16)}, protocol.StatusSuccess, "75192,21348"},
		{"by pieces", &protocol.Request{Command: protocol.FilterByPieces, Wishlist: sets(), MinPieces: protocol.Int(2000)}, protocol.StatusSuccess, "75192,21348"},
		{"no match", &protocol.Request{Command: protocol.FilterByAge, Wishlist: sets(), MinAge: protocol.Int(100)}, protocol.StatusSuccess, ""},
		{"missing min_age", &protocol.Request{Command: protocol.FilterByAge, Wishlist: sets()}, protocol.StatusError, ""},
		{"missing min_pieces", &protocol.Request{Command: protocol.FilterByPieces, Wishlist: sets()}, protocol.StatusError, ""},
		{"wrong worker", &protocol.Request{Command: protocol.SortLowToHigh}, protocol.StatusError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := w.Dispatch(ctx, tt.req)
			if reply.Status != tt.wantStatus {
				t.Fatalf("Status = %q (%s), want %q", reply.Status, reply.Message, tt.wantStatus)
			}
			if reply.OK() {
				if reply.Wishlist == nil {
					t.Fatal("Wishlist = nil on success")
				}
				if got := keys(reply.Collection()); got != tt.wantKeys {
					t.Errorf("wishlist = %s, want %s", got, tt.wantKeys)
				}
			}
		})
	}
}

// generated builds n sets cycling through valid and unparsable age groups.
func generated(n int) wishlist.Collection {
	ages := []string{"3+", "12", "x", "", "18+", " 9 +", "-4", "16+", "adults", "0"}
	c := make(wishlist.Collection, 0, n)
	for i := 0; i < n; i++ {
		c = append(c, wishlist.Entry{
			Key:    fmt.Sprintf("S%04d", i),
			Record: wishlist.Record{Name: fmt.Sprintf("set %d", i), AgeGroup: ages[(i*7)%len(ages)]},
		})
	}
	return c
}

func TestByAgeKeepsOrderedSubset(t *testing.T) {
	in := generated(120)

	for _, min := range []int{0, 1, 3, 9, 10, 16, 18, 19, 100} {
		t.Run(fmt.Sprintf("min %d", min), func(t *testing.T) {
			got := ByAge(in, min)

			next := 0
			for _, e := range got {
				i := in[next:].Index(e.Key)
				if i < 0 {
					t.Fatalf("%s is not from the input or is out of order", e.Key)
				}
				for _, skipped := range in[next : next+i] {
					if age, err := wishlist.ParseAge(skipped.Record.AgeGroup); err == nil && age >= min {
						t.Errorf("%s (age %q) excluded at min %d", skipped.Key, skipped.Record.AgeGroup, min)
					}
				}
				next += i + 1

				if e.Record != in[next-1].Record {
					t.Errorf("%s record changed to %+v", e.Key, e.Record)
				}
				age, err := wishlist.ParseAge(e.Record.AgeGroup)
				if err != nil || age < min {
					t.Errorf("%s (age %q) kept at min %d", e.Key, e.Record.AgeGroup, min)
				}
			}
			for _, skipped := range in[next:] {
				if age, err := wishlist.ParseAge(skipped.Record.AgeGroup); err == nil && age >= min {
					t.Errorf("%s (age %q) excluded at min %d", skipped.Key, skipped.Record.AgeGroup, min)
				}
			}
		})
	}
}
