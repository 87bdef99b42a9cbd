// Package search implements the search worker: opening a web search for a
// LEGO set in the default browser.
package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/browser"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/worker"
	"github.com/msto63/wishbrick/pkg/core/logging"
)

// DefaultSearchURL is the query prefix searches are appended to.
const DefaultSearchURL = "https://www.google.com/search?q="

// Acknowledgements returned in Reply.Result.
const (
	ResultByNumber = "Browser opened with search results by LEGO set number"
	ResultByName   = "Browser opened with search results by LEGO set name"
)

// Opener opens a URL for the user.
type Opener interface {
	Open(rawURL string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(rawURL string) error

// Open calls f.
func (f OpenerFunc) Open(rawURL string) error {
	return f(rawURL)
}

// Browser opens URLs in the system's default browser.
var Browser Opener = OpenerFunc(browser.OpenURL)

// Searcher builds search URLs and hands them to an Opener.
type Searcher struct {
	opener    Opener
	searchURL string
	logger    *logging.Logger
}

// New returns a Searcher. An empty searchURL selects DefaultSearchURL.
func New(opener Opener, searchURL string) *Searcher {
	if opener == nil {
		opener = Browser
	}
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	return &Searcher{
		opener:    opener,
		searchURL: searchURL,
		logger:    logging.New("search"),
	}
}

// URL returns the search URL for query.
func (s *Searcher) URL(query string) string {
	return s.searchURL + url.QueryEscape("LEGO "+strings.TrimSpace(query))
}

// Search opens the search for query. A failing opener is logged and
// otherwise ignored; only a blank query is an error.
func (s *Searcher) Search(query string) error {
	if strings.TrimSpace(query) == "" {
		return wisherror.New("Missing search query").WithCode(wisherror.CodeInvalidInput)
	}
	target := s.URL(query)
	if err := s.opener.Open(target); err != nil {
		s.logger.Warn("Failed to open browser", "url", target, "error", err)
	}
	return nil
}

// Register installs the search commands on w.
func (s *Searcher) Register(w *worker.Worker) {
	w.Handle(protocol.SearchByNumber, func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		if err := s.Search(req.SetNumber); err != nil {
			return nil, err
		}
		reply := protocol.Success()
		reply.Result = ResultByNumber
		return reply, nil
	})
	w.Handle(protocol.SearchByName, func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
		if err := s.Search(req.SetName); err != nil {
			return nil, err
		}
		reply := protocol.Success()
		reply.Result = ResultByName
		return reply, nil
	})
}

// NewWorker returns a worker serving the search commands through s.
func NewWorker(s *Searcher) *worker.Worker {
	w := worker.New("search")
	s.Register(w)
	return w
}
