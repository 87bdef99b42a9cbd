// Package client sends wishlist requests to the query workers and turns
// their replies into Go values.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
	"github.com/msto63/wishbrick/internal/protocol"
	"github.com/msto63/wishbrick/internal/sorting"
	"github.com/msto63/wishbrick/internal/wishlist"
	"github.com/msto63/wishbrick/internal/worker"
	"github.com/msto63/wishbrick/pkg/core/config"
	coregrpc "github.com/msto63/wishbrick/pkg/core/grpc"
	"github.com/msto63/wishbrick/pkg/core/health"
	"github.com/msto63/wishbrick/pkg/core/logging"
	"github.com/msto63/wishbrick/pkg/core/version"
)

// RemoteError is an error reply from a worker.
type RemoteError struct {
	Worker  string
	Command protocol.Command
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s worker: %s", e.Worker, e.Message)
}

// Code is CodeInvalidCommand when the worker did not know the command and
// CodeRemoteError for every other error reply.
func (e *RemoteError) Code() wisherror.Code {
	if e.Message == protocol.InvalidCommandMessage {
		return wisherror.CodeInvalidCommand
	}
	return wisherror.CodeRemoteError
}

// Unwrap exposes the reply as a coded error for wisherror.HasCode and GetCode.
func (e *RemoteError) Unwrap() error {
	return wisherror.New(e.Message).
		WithCode(e.Code()).
		WithOperation("client.call").
		WithDetail("worker", e.Worker).
		WithDetail("command", string(e.Command))
}

// IsRemote reports whether err carries a worker's error reply.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// Option configures a Client.
type Option func(*Client)

// WithDialOptions adds gRPC dial options, for example a custom dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOpts = append(c.dialOpts, opts...)
	}
}

// Client dispatches requests to the four workers. Calls block until the
// worker answers unless the configuration sets fail_fast or call_timeout.
type Client struct {
	cfg      *config.Config
	pool     *coregrpc.ConnectionPool
	dialOpts []grpc.DialOption
	logger   *logging.Logger
}

// New creates a client for the workers named in cfg. Connections are
// opened lazily on first use.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		logger: logging.New("client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	grpcCfg := coregrpc.DefaultClientConfig("")
	grpcCfg.WaitForReady = !cfg.Client.FailFast
	c.pool = coregrpc.NewConnectionPool(grpcCfg, c.dialOpts...)
	return c
}

// Close releases all worker connections.
func (c *Client) Close() error {
	return c.pool.Close()
}

// Connections returns the connectivity state per dialed worker address.
func (c *Client) Connections() map[string]string {
	return c.pool.GetStatus()
}

func (c *Client) call(ctx context.Context, workerName string, req *protocol.Request) (*protocol.Reply, error) {
	addr := c.cfg.GetServiceAddress(workerName)
	conn, err := c.pool.Get(addr)
	if err != nil {
		return nil, wisherror.Wrap(err, "cannot reach "+workerName+" worker").
			WithCode(wisherror.CodeServiceUnavailable).
			WithOperation("client.call").
			WithDetail("address", addr)
	}

	if d := c.cfg.Client.CallTimeout.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	c.logger.Debug("Sending request", "worker", workerName, "command", req.Command)
	reply, err := worker.Invoke(ctx, conn, req)
	if err != nil {
		return nil, transportError(err, workerName, addr)
	}
	if !reply.OK() {
		c.logger.Warn("Worker returned an error", "worker", workerName, "command", req.Command, "message", reply.Message)
		return nil, &RemoteError{Worker: workerName, Command: req.Command, Message: reply.Message}
	}
	return reply, nil
}

func transportError(err error, workerName, addr string) error {
	code := wisherror.CodeServiceUnavailable
	switch status.Code(err) {
	case codes.DeadlineExceeded:
		code = wisherror.CodeServiceTimeout
	case codes.Internal, codes.Unknown:
		code = wisherror.CodeInternal
	}
	return wisherror.Wrap(err, workerName+" worker call failed").
		WithCode(code).
		WithOperation("client.call").
		WithDetail("address", addr)
}

func malformed(workerName string, cmd protocol.Command, field string) error {
	return wisherror.Newf("%s worker reply to %s is missing %s", workerName, cmd, field).
		WithCode(wisherror.CodeInvalidData).
		WithOperation("client.call")
}

// Sort returns c ordered by price in the given direction.
func (c *Client) Sort(ctx context.Context, coll wishlist.Collection, dir sorting.Direction) (wishlist.Collection, error) {
	reply, err := c.call(ctx, config.WorkerSort, &protocol.Request{Command: dir.Command(), Wishlist: coll})
	if err != nil {
		return nil, err
	}
	if reply.Wishlist == nil {
		return nil, malformed(config.WorkerSort, dir.Command(), "wishlist")
	}
	return *reply.Wishlist, nil
}

// FilterByAge returns the sets for ages minAge and up.
func (c *Client) FilterByAge(ctx context.Context, coll wishlist.Collection, minAge int) (wishlist.Collection, error) {
	return c.filter(ctx, &protocol.Request{Command: protocol.FilterByAge, Wishlist: coll, MinAge: protocol.Int(minAge)})
}

// FilterByPieces returns the sets with at least minPieces pieces.
func (c *Client) FilterByPieces(ctx context.Context, coll wishlist.Collection, minPieces int) (wishlist.Collection, error) {
	return c.filter(ctx, &protocol.Request{Command: protocol.FilterByPieces, Wishlist: coll, MinPieces: protocol.Int(minPieces)})
}

func (c *Client) filter(ctx context.Context, req *protocol.Request) (wishlist.Collection, error) {
	reply, err := c.call(ctx, config.WorkerFilter, req)
	if err != nil {
		return nil, err
	}
	return reply.Collection(), nil
}

// CountSets returns the number of sets in coll.
func (c *Client) CountSets(ctx context.Context, coll wishlist.Collection) (int, error) {
	reply, err := c.call(ctx, config.WorkerTotals, &protocol.Request{Command: protocol.TotalNumberOfSets, Wishlist: coll})
	if err != nil {
		return 0, err
	}
	if reply.TotalSets == nil {
		return 0, malformed(config.WorkerTotals, protocol.TotalNumberOfSets, "total_sets")
	}
	return *reply.TotalSets, nil
}

// TotalCost returns the summed price of coll.
func (c *Client) TotalCost(ctx context.Context, coll wishlist.Collection) (decimal.Decimal, error) {
	reply, err := c.call(ctx, config.WorkerTotals, &protocol.Request{Command: protocol.TotalCostOfSets, Wishlist: coll})
	if err != nil {
		return decimal.Zero, err
	}
	if reply.TotalCost == nil {
		return decimal.Zero, malformed(config.WorkerTotals, protocol.TotalCostOfSets, "total_cost")
	}
	return decimal.NewFromFloat(*reply.TotalCost), nil
}

// TotalPieces returns the summed piece count of coll.
func (c *Client) TotalPieces(ctx context.Context, coll wishlist.Collection) (int, error) {
	reply, err := c.call(ctx, config.WorkerTotals, &protocol.Request{Command: protocol.TotalPiecesOfSets, Wishlist: coll})
	if err != nil {
		return 0, err
	}
	if reply.TotalPieces == nil {
		return 0, malformed(config.WorkerTotals, protocol.TotalPiecesOfSets, "total_pieces")
	}
	return *reply.TotalPieces, nil
}

// SearchByNumber opens a web search for a set number and returns the
// worker's acknowledgement.
func (c *Client) SearchByNumber(ctx context.Context, number string) (string, error) {
	reply, err := c.call(ctx, config.WorkerSearch, &protocol.Request{Command: protocol.SearchByNumber, SetNumber: number})
	if err != nil {
		return "", err
	}
	return reply.Result, nil
}

// SearchByName opens a web search for a set name and returns the
// worker's acknowledgement.
func (c *Client) SearchByName(ctx context.Context, name string) (string, error) {
	reply, err := c.call(ctx, config.WorkerSearch, &protocol.Request{Command: protocol.SearchByName, SetName: name})
	if err != nil {
		return "", err
	}
	return reply.Result, nil
}

// Health checks every worker's gRPC health service.
func (c *Client) Health(ctx context.Context, timeout time.Duration) (*health.Report, error) {
	registry := health.NewRegistry("wish", version.Client)
	for _, name := range config.Workers {
		addr := c.cfg.GetServiceAddress(name)
		conn, err := c.pool.Get(addr)
		if err != nil {
			return nil, wisherror.Wrap(err, "cannot reach "+name+" worker").
				WithCode(wisherror.CodeServiceUnavailable).
				WithOperation("client.Health").
				WithDetail("address", addr)
		}
		registry.Register(health.GRPCCheck(name, conn, worker.ServiceName, timeout))
	}
	return registry.Check(ctx), nil
}
