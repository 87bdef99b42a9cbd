package grpc

import (
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// ClientConfig holds gRPC client configuration
type ClientConfig struct {
	Target            string
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
	// WaitForReady makes calls block while the target is unreachable
	// instead of failing fast.
	WaitForReady bool
}

// DefaultClientConfig returns a default client configuration
func DefaultClientConfig(target string) ClientConfig {
	return ClientConfig{
		Target:            target,
		MaxRecvMsgSize:    4 * 1024 * 1024, // 4MB
		MaxSendMsgSize:    4 * 1024 * 1024, // 4MB
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
		WaitForReady:      true,
	}
}

// Dial creates a client connection speaking the JSON codec. The connection
// is established lazily on the first call.
func Dial(cfg ClientConfig, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.CallContentSubtype(CodecName),
			grpc.WaitForReady(cfg.WaitForReady),
			grpc.MaxCallRecvMsgSize(cfg.MaxRecvMsgSize),
			grpc.MaxCallSendMsgSize(cfg.MaxSendMsgSize),
		),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveInterval,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithChainUnaryInterceptor(
			ClientRequestIDInterceptor(),
			ClientLoggingInterceptor(),
		),
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(cfg.Target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.Target, err)
	}
	return conn, nil
}

// ConnectionPool keeps one connection per target (thread-safe)
type ConnectionPool struct {
	mu          sync.Mutex
	connections map[string]*grpc.ClientConn
	config      ClientConfig
	opts        []grpc.DialOption
}

// NewConnectionPool creates a pool dialing with cfg and opts
func NewConnectionPool(cfg ClientConfig, opts ...grpc.DialOption) *ConnectionPool {
	return &ConnectionPool{
		connections: make(map[string]*grpc.ClientConn),
		config:      cfg,
		opts:        opts,
	}
}

// Get returns the connection to target, dialing on first use
func (p *ConnectionPool) Get(target string) (*grpc.ClientConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.connections[target]; ok {
		return conn, nil
	}

	cfg := p.config
	cfg.Target = target
	conn, err := Dial(cfg, p.opts...)
	if err != nil {
		return nil, err
	}
	p.connections[target] = conn
	return conn, nil
}

// GetStatus returns the connectivity state of every target
func (p *ConnectionPool) GetStatus() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := make(map[string]string, len(p.connections))
	for target, conn := range p.connections {
		status[target] = conn.GetState().String()
	}
	return status
}

// Close closes all connections in the pool
func (p *ConnectionPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for target, conn := range p.connections {
		if err := conn.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close connection to %s: %w", target, err)
		}
		delete(p.connections, target)
	}
	return lastErr
}
