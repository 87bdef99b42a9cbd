// Package workertest runs workers on in-memory listeners for tests.
package workertest

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/msto63/wishbrick/internal/worker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

// Network routes dials by name to in-memory worker servers.
type Network struct {
	mu        sync.Mutex
	listeners map[string]*bufconn.Listener
	stops     map[string]func()
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		listeners: make(map[string]*bufconn.Listener),
		stops:     make(map[string]func()),
	}
}

// Target returns the dial target for a worker started under name.
func Target(name string) string {
	return "passthrough:///" + name
}

// Start serves w under name until the test ends and returns its target.
func (n *Network) Start(t testing.TB, name string, w *worker.Worker) string {
	t.Helper()

	srv, err := worker.NewServer(w, worker.Config{Host: "bufnet", Version: "test"})
	if err != nil {
		t.Fatalf("worker.NewServer(%s) error = %v", name, err)
	}

	lis := bufconn.Listen(bufSize)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Serve(%s) error = %v", name, err)
			}
		})
	}

	n.mu.Lock()
	n.listeners[name] = lis
	n.stops[name] = stop
	n.mu.Unlock()
	t.Cleanup(stop)

	return Target(name)
}

// Stop shuts a started worker down and forgets it, so new dials fail.
func (n *Network) Stop(name string) {
	n.mu.Lock()
	stop, ok := n.stops[name]
	delete(n.stops, name)
	delete(n.listeners, name)
	n.mu.Unlock()
	if ok {
		stop()
	}
}

// DialOption connects clients to the network instead of TCP.
func (n *Network) DialOption() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		name := strings.TrimPrefix(addr, "passthrough:///")
		n.mu.Lock()
		lis, ok := n.listeners[name]
		n.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("workertest: no worker named %q", name)
		}
		return lis.DialContext(ctx)
	})
}
