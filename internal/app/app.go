// Package app assembles workers and the interactive client from the
// configuration. The wish command and the standalone worker binaries
// share it.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/filtering"
	"github.com/msto63/wishbrick/internal/search"
	"github.com/msto63/wishbrick/internal/sorting"
	"github.com/msto63/wishbrick/internal/totals"
	"github.com/msto63/wishbrick/internal/worker"
	"github.com/msto63/wishbrick/pkg/core/config"
	"github.com/msto63/wishbrick/pkg/core/logging"
	"github.com/msto63/wishbrick/pkg/core/version"
)

// RuntimeDir holds PID files and logs of background workers.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "wishbrick")
	}
	return filepath.Join(os.TempDir(), "wishbrick")
}

// SetupLogging applies the configured level and format to every logger
// created afterwards, writing to out.
func SetupLogging(cfg *config.Config, out io.Writer) {
	logging.SetDefaults(logging.LoggerConfig{
		Level:  cfg.General.LogLevel,
		Format: cfg.General.LogFormat,
		Output: out,
	})
}

// ClientLogFile opens the interactive client's log file, so logs stay
// off the terminal.
func ClientLogFile(cfg *config.Config) (*os.File, error) {
	path := cfg.General.LogFile
	if path == "" {
		path = filepath.Join(RuntimeDir(), "logs", "wish.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, wisherror.Wrap(err, "cannot create log directory").
			WithCode(wisherror.CodeConfigError).
			WithDetail("path", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, wisherror.Wrap(err, "cannot open log file").
			WithCode(wisherror.CodeConfigError).
			WithDetail("path", path)
	}
	return f, nil
}

// NewWorker builds the named worker.
func NewWorker(name string, cfg *config.Config) (*worker.Worker, error) {
	switch name {
	case config.WorkerSort:
		return sorting.NewWorker(), nil
	case config.WorkerFilter:
		return filtering.NewWorker(), nil
	case config.WorkerSearch:
		return search.NewWorker(search.New(search.Browser, cfg.Search.SearchURL)), nil
	case config.WorkerTotals:
		return totals.NewWorker(), nil
	}
	return nil, wisherror.Newf("unknown worker %q", name).
		WithCode(wisherror.CodeInvalidInput).
		WithDetail("workers", config.Workers)
}

// NewServer builds the named worker's server bound to its configured
// address.
func NewServer(name string, cfg *config.Config) (*worker.Server, error) {
	w, err := NewWorker(name, cfg)
	if err != nil {
		return nil, err
	}
	wc := cfg.Worker(name)
	return worker.NewServer(w, worker.Config{
		Host:    wc.Host,
		Port:    wc.Port,
		Version: version.ServiceVersion(name),
	})
}

// Serve runs the named workers until ctx is cancelled. If one of them
// fails the others are stopped too.
func Serve(ctx context.Context, cfg *config.Config, names ...string) error {
	if len(names) == 0 {
		names = config.Workers
	}

	servers := make([]*worker.Server, 0, len(names))
	for _, name := range names {
		srv, err := NewServer(name, cfg)
		if err != nil {
			return err
		}
		servers = append(servers, srv)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			return srv.Run(ctx)
		})
	}
	return g.Wait()
}
