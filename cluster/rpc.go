// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/subgraph"
)

// ServiceName is the net/rpc service a worker registers.
const ServiceName = "WorkerService"

const computeMethod = ServiceName + ".Compute"

// DefaultDialTimeout bounds a single TCP dial to a worker.
const DefaultDialTimeout = 5 * time.Second

// WorkerService exposes a Worker over net/rpc.
type WorkerService struct {
	worker *Worker
}

// Compute is the RPC entry point: one message in, one Result out.
func (s *WorkerService) Compute(msg *subgraph.Message, reply *Result) error {
	res, err := s.worker.Run(context.Background(), msg)
	if err != nil {
		return err
	}
	*reply = res

	return nil
}

// Serve accepts coordinator connections on lis until ctx is done, answering
// WorkerService.Compute with w. lis is closed on return. A canceled ctx is a
// clean shutdown and returns nil.
func Serve(ctx context.Context, lis net.Listener, w *Worker) error {
	srv := rpc.NewServer()
	if err := srv.RegisterName(ServiceName, &WorkerService{worker: w}); err != nil {
		_ = lis.Close()
		return fmt.Errorf("Serve: register: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = lis.Close()
	}()

	w.logger.Info("worker listening", zap.String("addr", lis.Addr().String()))
	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("Serve: accept: %w: %w", ErrTransport, err)
		}
		w.logger.Debug("coordinator connected", zap.String("remote", conn.RemoteAddr().String()))
		go srv.ServeConn(conn)
	}
}

// RPCOption configures an RPCTransport.
type RPCOption func(t *RPCTransport)

// WithDialTimeout sets the per-worker dial timeout.
func WithDialTimeout(d time.Duration) RPCOption {
	return func(t *RPCTransport) {
		if d > 0 {
			t.dialTimeout = d
		}
	}
}

// WithRPCLogger sets the transport logger.
func WithRPCLogger(l *zap.Logger) RPCOption {
	return func(t *RPCTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// RPCTransport sends messages to remote workers with net/rpc.
// Connections are dialed lazily per rank and reused across rounds.
type RPCTransport struct {
	peers       map[int]string
	dialTimeout time.Duration
	logger      *zap.Logger

	mu      sync.Mutex
	clients map[int]*rpc.Client
	calls   map[int]*rpc.Call
}

// NewRPCTransport returns a transport addressing rank k at peers[k].
func NewRPCTransport(peers map[int]string, opts ...RPCOption) *RPCTransport {
	t := &RPCTransport{
		peers:       make(map[int]string, len(peers)),
		dialTimeout: DefaultDialTimeout,
		logger:      zap.NewNop(),
		clients:     make(map[int]*rpc.Client),
		calls:       make(map[int]*rpc.Call),
	}
	for rank, addr := range peers {
		t.peers[rank] = addr
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// client returns the cached connection for rank, dialing on first use.
// Caller holds t.mu.
func (t *RPCTransport) client(ctx context.Context, rank int) (*rpc.Client, error) {
	if c, ok := t.clients[rank]; ok {
		return c, nil
	}
	addr, ok := t.peers[rank]
	if !ok {
		return nil, fmt.Errorf("no address for rank %d: %w", rank, ErrTransport)
	}
	d := net.Dialer{Timeout: t.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial rank %d at %s: %w: %w", rank, addr, ErrTransport, err)
	}
	c := rpc.NewClient(conn)
	t.clients[rank] = c
	t.logger.Debug("dialed worker", zap.Int("rank", rank), zap.String("addr", addr))

	return c, nil
}

// Send implements Transport. The call is asynchronous.
func (t *RPCTransport) Send(ctx context.Context, msg *subgraph.Message) error {
	if msg == nil {
		return fmt.Errorf("RPCTransport.Send: nil message: %w", ErrTransport)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.calls[msg.Rank]; dup {
		return fmt.Errorf("RPCTransport.Send(rank %d): already sent: %w", msg.Rank, ErrTransport)
	}
	c, err := t.client(ctx, msg.Rank)
	if err != nil {
		return fmt.Errorf("RPCTransport.Send: %w", err)
	}
	t.calls[msg.Rank] = c.Go(computeMethod, msg, new(Result), make(chan *rpc.Call, 1))
	t.logger.Debug("sent subgraph",
		zap.Int("rank", msg.Rank),
		zap.Int("triples", len(msg.Triples)),
	)

	return nil
}

// Gather implements Transport, waiting on the outstanding calls in rank order.
func (t *RPCTransport) Gather(ctx context.Context) ([]Result, error) {
	t.mu.Lock()
	calls := t.calls
	t.calls = make(map[int]*rpc.Call)
	t.mu.Unlock()

	ranks := make([]int, 0, len(calls))
	for r := range calls {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)

	out := make([]Result, 0, len(ranks))
	for _, r := range ranks {
		select {
		case call := <-calls[r].Done:
			if call.Error != nil {
				return nil, fmt.Errorf("RPCTransport.Gather: %w", remoteError(r, call.Error))
			}
			out = append(out, *call.Reply.(*Result))
		case <-ctx.Done():
			return nil, fmt.Errorf("RPCTransport.Gather(rank %d): %w: %w", r, ErrTransport, ctx.Err())
		}
	}

	return out, nil
}

// Reset implements Transport. Pending calls keep their connection; their
// replies land in buffered channels nobody reads.
func (t *RPCTransport) Reset() {
	t.mu.Lock()
	if len(t.calls) > 0 {
		t.logger.Debug("abandoned pending calls", zap.Int("calls", len(t.calls)))
	}
	t.calls = make(map[int]*rpc.Call)
	t.mu.Unlock()
}

// Close implements Transport.
func (t *RPCTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	for rank, c := range t.clients {
		if err := c.Close(); err != nil && !errors.Is(err, rpc.ErrShutdown) {
			errs = append(errs, fmt.Errorf("close rank %d: %w", rank, err))
		}
		delete(t.clients, rank)
	}

	return errors.Join(errs...)
}

// remoteSentinels are the worker-side failures recognized in server errors.
var remoteSentinels = []error{oracle.ErrOracleFailure, subgraph.ErrMalformed}

// remoteError restores worker sentinels lost in gob transit; everything else
// is a transport failure.
func remoteError(rank int, err error) error {
	var serr rpc.ServerError
	if errors.As(err, &serr) {
		for _, s := range remoteSentinels {
			if strings.Contains(string(serr), s.Error()) {
				return fmt.Errorf("rank %d: %s: %w", rank, string(serr), s)
			}
		}
	}

	return fmt.Errorf("rank %d: %w: %w", rank, ErrTransport, err)
}
