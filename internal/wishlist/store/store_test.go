package store

import (
	"context"
	"testing"

	"github.com/msto63/wishbrick/internal/wishlist"
)

// drivers runs fn against every store implementation.
func drivers(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	for _, driver := range []string{DriverMemory, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			s, err := New(context.Background(), driver, wishlist.Seed())
			if err != nil {
				t.Fatalf("New(%q) error = %v", driver, err)
			}
			t.Cleanup(func() { s.Close() })
			fn(t, s)
		})
	}
}

func keysOf(t *testing.T, s Store) []string {
	t.Helper()
	snap, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	return snap.Keys()
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSeededOrder(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		want := []string{"75192", "75370", "75379"}
		if got := keysOf(t, s); !equalKeys(got, want) {
			t.Errorf("keys = %v, want %v", got, want)
		}
		if n, _ := s.Len(context.Background()); n != 3 {
			t.Errorf("Len() = %d, want 3", n)
		}
	})
}

func TestPutThenGet(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		rec := wishlist.Record{Name: "X", Price: "10", AgeGroup: "5+", Pieces: "20", Description: "desc"}

		if err := s.Put(ctx, "00001", rec); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "00001")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != rec {
			t.Errorf("Get() = %+v, want %+v", got, rec)
		}
		if keys := keysOf(t, s); keys[len(keys)-1] != "00001" {
			t.Errorf("new key not appended: %v", keys)
		}
	})
}

func TestPutOverwriteKeepsPosition(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		rec := wishlist.Record{Name: "Stormtrooper Mech (2024)", Price: "17.99"}

		if err := s.Put(ctx, "75370", rec); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, _ := s.Get(ctx, "75370")
		if got != rec {
			t.Errorf("Get() = %+v, want %+v", got, rec)
		}
		want := []string{"75192", "75370", "75379"}
		if keys := keysOf(t, s); !equalKeys(keys, want) {
			t.Errorf("keys = %v, want %v", keys, want)
		}
	})
}

func TestUpdate(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		before, _ := s.Get(ctx, "75192")

		if err := s.Update(ctx, "75192", wishlist.Record{}); err != nil {
			t.Fatalf("Update(empty) error = %v", err)
		}
		if got, _ := s.Get(ctx, "75192"); got != before {
			t.Errorf("Update(empty) changed record: %+v", got)
		}

		if err := s.Update(ctx, "75192", wishlist.Record{Price: "799.99"}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		got, _ := s.Get(ctx, "75192")
		if got.Price != "799.99" || got.Name != before.Name || got.Pieces != before.Pieces {
			t.Errorf("Update() = %+v", got)
		}

		if err := s.Update(ctx, "99999", wishlist.Record{Name: "ghost"}); !IsNotFound(err) {
			t.Errorf("Update(absent) error = %v, want not found", err)
		}
		if n, _ := s.Len(ctx); n != 3 {
			t.Errorf("Update(absent) inserted: Len() = %d", n)
		}
	})
}

func TestDelete(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		if err := s.Delete(ctx, "75370"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Get(ctx, "75370"); !IsNotFound(err) {
			t.Errorf("Get(deleted) error = %v, want not found", err)
		}
		if err := s.Delete(ctx, "75370"); !IsNotFound(err) {
			t.Errorf("Delete(deleted) error = %v, want not found", err)
		}
		want := []string{"75192", "75379"}
		if keys := keysOf(t, s); !equalKeys(keys, want) {
			t.Errorf("keys = %v, want %v", keys, want)
		}
	})
}

func TestGetAbsent(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		if _, err := s.Get(context.Background(), "nope"); !IsNotFound(err) {
			t.Errorf("Get(absent) error = %v, want not found", err)
		}
	})
}

func TestAllIsRestartable(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		seq := s.All(context.Background())

		first, err := Collect(seq)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		second, err := Collect(seq)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if !equalKeys(first.Keys(), second.Keys()) || len(first) != 3 {
			t.Errorf("ranging twice gave %v then %v", first.Keys(), second.Keys())
		}

		// stopping early must not leak state
		for range seq {
			break
		}
		if n, err := s.Len(context.Background()); err != nil || n != 3 {
			t.Errorf("Len() after early break = %d, %v", n, err)
		}
	})
}

func TestSnapshotIsIndependent(t *testing.T) {
	drivers(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		snap, _ := s.Snapshot(ctx)
		snap[0].Record.Name = "changed"

		if got, _ := s.Get(ctx, "75192"); got.Name != "Millennium Falcon" {
			t.Errorf("Snapshot shares memory with store: %q", got.Name)
		}
	})
}

func TestNewUnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), "postgres", nil); err == nil {
		t.Error("New(postgres) error = nil")
	}
}
