package search

import (
	"context"
	"errors"
	"testing"

	"github.com/msto63/wishbrick/internal/protocol"
)

type recorder struct {
	urls []string
	err  error
}

func (r *recorder) Open(rawURL string) error {
	r.urls = append(r.urls, rawURL)
	return r.err
}

func TestURL(t *testing.T) {
	tests := []struct {
		prefix string
		query  string
		want   string
	}{
		{"", "75192", "https://www.google.com/search?q=LEGO+75192"},
		{"", "Millennium Falcon", "https://www.google.com/search?q=LEGO+Millennium+Falcon"},
		{"", "  R2-D2 ", "https://www.google.com/search?q=LEGO+R2-D2"},
		{"", "Dungeons & Dragons", "https://www.google.com/search?q=LEGO+Dungeons+%26+Dragons"},
		{"https://duckduckgo.com/?q=", "10497", "https://duckduckgo.com/?q=LEGO+10497"},
	}

	for _, tt := range tests {
		s := New(&recorder{}, tt.prefix)
		if got := s.URL(tt.query); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	rec := &recorder{}
	s := New(rec, "")

	if err := s.Search("75192"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(rec.urls) != 1 {
		t.Fatalf("opened %d urls, want 1", len(rec.urls))
	}

	if err := s.Search("   "); err == nil {
		t.Error("Search(blank) error = nil")
	}
	if len(rec.urls) != 1 {
		t.Errorf("blank query opened a browser")
	}
}

func TestSearchIgnoresOpenerFailure(t *testing.T) {
	s := New(&recorder{err: errors.New("no display")}, "")
	if err := s.Search("75192"); err != nil {
		t.Errorf("Search() error = %v, want nil", err)
	}
}

func TestWorker(t *testing.T) {
	rec := &recorder{}
	w := NewWorker(New(rec, ""))
	ctx := context.Background()

	tests := []struct {
		name       string
		req        *protocol.Request
		wantStatus string
		wantResult string
	}{
		{"by number", &protocol.Request{Command: protocol.SearchByNumber, SetNumber: "75192"}, protocol.StatusSuccess, ResultByNumber},
		{"by name", &protocol.Request{Command: protocol.SearchByName, SetName: "R2-D2"}, protocol.StatusSuccess, ResultByName},
		{"missing number", &protocol.Request{Command: protocol.SearchByNumber}, protocol.StatusError, ""},
		{"unknown", &protocol.Request{Command: protocol.TotalCostOfSets}, protocol.StatusError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := w.Dispatch(ctx, tt.req)
			if reply.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", reply.Status, tt.wantStatus)
			}
			if reply.Result != tt.wantResult {
				t.Errorf("Result = %q, want %q", reply.Result, tt.wantResult)
			}
		})
	}

	want := []string{
		"https://www.google.com/search?q=LEGO+75192",
		"https://www.google.com/search?q=LEGO+R2-D2",
	}
	if len(rec.urls) != len(want) {
		t.Fatalf("opened %v, want %v", rec.urls, want)
	}
	for i := range want {
		if rec.urls[i] != want[i] {
			t.Errorf("url[%d] = %q, want %q", i, rec.urls[i], want[i])
		}
	}
}
