package sorting

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/wishlist"
)

func priced(pairs ...string) wishlist.Collection {
	var c wishlist.Collection
	for i := 0; i < len(pairs); i += 2 {
		c = append(c, wishlist.Entry{Key: pairs[i], Record: wishlist.Record{Name: "set " + pairs[i], Price: pairs[i+1]}})
	}
	return c
}

func keys(c wishlist.Collection) string {
	return strings.Join(c.Keys(), ",")
}

func TestByPrice(t *testing.T) {
	tests := []struct {
		name string
		in   wishlist.Collection
		dir  Direction
		want string
	}{
		{"seed ascending", wishlist.Seed(), Ascending, "75370,75379,75192"},
		{"seed descending", wishlist.Seed(), Descending, "75192,75379,75370"},
		{"empty", wishlist.Collection{}, Ascending, ""},
		{"ties keep input order ascending", priced("a", "5", "b", "1", "c", "5", "d", "1"), Ascending, "b,d,a,c"},
		{"ties keep input order descending", priced("a", "5", "b", "1", "c", "5", "d", "1"), Descending, "a,c,b,d"},
		{"numeric not lexical", priced("a", "100", "b", "9.5", "c", "20"), Ascending, "b,c,a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByPrice(tt.in, tt.dir)
			if err != nil {
				t.Fatalf("ByPrice() error = %v", err)
			}
			if keys(got) != tt.want {
				t.Errorf("ByPrice() = %s, want %s", keys(got), tt.want)
			}
		})
	}
}

func TestByPriceCanonicalPrices(t *testing.T) {
	got, err := ByPrice(priced("a", "15.90", "b", " 7 ", "c", "849.99"), Ascending)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"7", "15.9", "849.99"}
	for i, e := range got {
		if e.Record.Price != want[i] {
			t.Errorf("price[%d] = %q, want %q", i, e.Record.Price, want[i])
		}
		if e.Record.Name != "set "+e.Key {
			t.Errorf("record %s lost its name: %+v", e.Key, e.Record)
		}
	}
}

func TestByPriceDoesNotModifyInput(t *testing.T) {
	in := priced("a", "2.50", "b", "1")
	if _, err := ByPrice(in, Ascending); err != nil {
		t.Fatal(err)
	}
	if keys(in) != "a,b" || in[0].Record.Price != "2.50" {
		t.Errorf("input changed to %+v", in)
	}
}

func TestByPriceInvalid(t *testing.T) {
	for _, price := range []string{"abc", "", "-1"} {
		_, err := ByPrice(priced("a", "1", "bad", price), Ascending)
		if err == nil {
			t.Errorf("ByPrice(price %q) error = nil", price)
			continue
		}
		if !wisherror.HasCode(err, wisherror.CodeInvalidData) {
			t.Errorf("ByPrice(price %q) code = %v, want InvalidData", price, wisherror.GetCode(err))
		}
		if !strings.Contains(err.Error(), "bad") {
			t.Errorf("error %q does not name the set", err)
		}
	}
}

func TestWorker(t *testing.T) {
	w := NewWorker()
	ctx := context.Background()

	reply := w.Dispatch(ctx, &protocol.Request{Command: protocol.SortHighToLow, Wishlist: wishlist.Seed()})
	if !reply.OK() {
		t.Fatalf("reply = %+v", reply)
	}
	if got := keys(reply.Collection()); got != "75192,75379,75370" {
		t.Errorf("sorted = %s", got)
	}

	reply = w.Dispatch(ctx, &protocol.Request{Command: protocol.SortLowToHigh, Wishlist: priced("x", "free")})
	if reply.Status != protocol.StatusError {
		t.Errorf("Status = %q, want error", reply.Status)
	}

	reply = w.Dispatch(ctx, &protocol.Request{Command: protocol.SortLowToHigh})
	if !reply.OK() || reply.Wishlist == nil || len(*reply.Wishlist) != 0 {
		t.Errorf("empty request reply = %+v, want empty success", reply)
	}

	reply = w.Dispatch(ctx, &protocol.Request{Command: protocol.FilterByAge})
	if reply.Message != protocol.InvalidCommandMessage {
		t.Errorf("Message = %q, want %q", reply.Message, protocol.InvalidCommandMessage)
	}
}

func TestDirection(t *testing.T) {
	if Ascending.Command() != protocol.SortLowToHigh || Descending.Command() != protocol.SortHighToLow {
		t.Error("Direction.Command() mismatch")
	}
	if Descending.String() != "high to low" {
		t.Errorf("String() = %q", Descending.String())
	}
}

// generated builds n sets with distinct prices in scrambled order.
func generated(n int) wishlist.Collection {
	c := make(wishlist.Collection, 0, n)
	for i := 0; i < n; i++ {
		dollars := (i * 7919) % n
		c = append(c, wishlist.Entry{
			Key:    fmt.Sprintf("S%04d", i),
			Record: wishlist.Record{Name: fmt.Sprintf("set %d", i), Price: fmt.Sprintf("%d.%02d", dollars, i%100)},
		})
	}
	return c
}

func TestByPriceDescendingIsReversedAscending(t *testing.T) {
	tests := []struct {
		name string
		in   wishlist.Collection
	}{
		{"seed", wishlist.Seed()},
		{"one", generated(1)},
		{"two", generated(2)},
		{"seventeen", generated(17)},
		{"hundred", generated(100)},
		{"large", generated(257)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asc, err := ByPrice(tt.in, Ascending)
			if err != nil {
				t.Fatalf("ByPrice(asc) error = %v", err)
			}
			desc, err := ByPrice(tt.in, Descending)
			if err != nil {
				t.Fatalf("ByPrice(desc) error = %v", err)
			}
			if len(asc) != len(tt.in) || len(desc) != len(tt.in) {
				t.Fatalf("len = %d/%d, want %d", len(asc), len(desc), len(tt.in))
			}

			reversed := asc.Keys()
			slices.Reverse(reversed)
			if !slices.Equal(reversed, desc.Keys()) {
				t.Errorf("reversed ascending = %v, want %v", reversed, desc.Keys())
			}
			for i := 1; i < len(asc); i++ {
				prev, _ := wishlist.ParsePrice(asc[i-1].Record.Price)
				cur, _ := wishlist.ParsePrice(asc[i].Record.Price)
				if !prev.LessThan(cur) {
					t.Errorf("ascending[%d] = %s not below [%d] = %s", i-1, prev, i, cur)
				}
			}
		})
	}
}
