// Package worker is the request/reply engine shared by the query workers.
// A Worker maps commands to handlers and answers one request at a time;
// Server exposes it over gRPC with the JSON codec.
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/msto63/wishbrick/internal/protocol"
	coregrpc "github.com/msto63/wishbrick/pkg/core/grpc"
	"github.com/msto63/wishbrick/pkg/core/logging"
)

// HandlerFunc computes the reply for one command. A returned error becomes
// an error reply carrying the error text.
type HandlerFunc func(ctx context.Context, req *protocol.Request) (*protocol.Reply, error)

// Worker dispatches requests to the handler registered for their command.
type Worker struct {
	name     string
	handlers map[protocol.Command]HandlerFunc
	logger   *logging.Logger

	// mu makes request handling strictly sequential.
	mu sync.Mutex
}

// New creates a worker with no handlers.
func New(name string) *Worker {
	return &Worker{
		name:     name,
		handlers: make(map[protocol.Command]HandlerFunc),
		logger:   logging.New(name + "-worker"),
	}
}

// Name returns the worker name.
func (w *Worker) Name() string {
	return w.name
}

// Handle registers fn for cmd. Registering a command twice panics.
func (w *Worker) Handle(cmd protocol.Command, fn HandlerFunc) {
	if _, exists := w.handlers[cmd]; exists {
		panic(fmt.Sprintf("worker %s: duplicate handler for command %q", w.name, cmd))
	}
	w.handlers[cmd] = fn
}

// Commands returns the registered commands, sorted.
func (w *Worker) Commands() []protocol.Command {
	cmds := make([]protocol.Command, 0, len(w.handlers))
	for cmd := range w.handlers {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i] < cmds[j] })
	return cmds
}

// Dispatch runs the handler for req.Command. It always returns a reply:
// unknown commands and handler errors become error replies.
func (w *Worker) Dispatch(ctx context.Context, req *protocol.Request) *protocol.Reply {
	w.mu.Lock()
	defer w.mu.Unlock()

	logger := w.logger
	if id := coregrpc.GetRequestID(ctx); id != "" {
		logger = logger.WithRequestID(id)
	}

	handler, ok := w.handlers[req.Command]
	if !ok {
		logger.Warn("Unknown command", "command", req.Command)
		return protocol.Error(protocol.InvalidCommandMessage)
	}

	logger.Info("Received request", "command", req.Command, "sets", len(req.Wishlist))

	reply, err := handler(ctx, req)
	if err != nil {
		logger.Warn("Request failed", "command", req.Command, "error", err)
		return protocol.Error(err.Error())
	}
	if reply == nil {
		reply = protocol.Success()
	}
	if reply.Status == "" {
		reply.Status = protocol.StatusSuccess
	}

	logger.Info("Sent response", "command", req.Command, "status", reply.Status)
	return reply
}

// Call implements Service.
func (w *Worker) Call(ctx context.Context, req *protocol.Request) (*protocol.Reply, error) {
	return w.Dispatch(ctx, req), nil
}
