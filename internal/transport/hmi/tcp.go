// Package hmi implements the HMI bus transport: a single persistent TCP
// connection carrying JSON-RPC-2-style frames (spec §6), reconnected
// through a circuit breaker on failure and fed into the dispatcher's
// HMI-inbound queue. It is the concrete HMISender the core dials back
// through for requests, responses and notifications.
package hmi

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/dispatch"
	busproto "github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/resilience"
)

// Transport owns the HMI bus's single outbound connection, redialed behind
// a circuit breaker scoped to that connection alone (kept separate from
// SyncPBuffer's destination breaker so a flaky sync-P host cannot trip the
// core's own bus connectivity).
type Transport struct {
	addr       string
	dialTimeout time.Duration
	dispatcher *dispatch.Dispatcher
	breaker    *resilience.Breaker
	log        *zap.Logger

	mu   sync.Mutex
	conn net.Conn
	enc  *json.Encoder
}

// New builds a Transport for the given HMI bus address. Connect must be
// called before any Send* method will succeed.
func New(addr string, dialTimeout time.Duration, d *dispatch.Dispatcher, log *zap.Logger) *Transport {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transport{
		addr:        addr,
		dialTimeout: dialTimeout,
		dispatcher:  d,
		log:         log,
		breaker: resilience.New("hmi-bus", resilience.Settings{
			ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 3 },
		}),
	}
}

// Run dials the HMI bus and reads frames until ctx is cancelled,
// redialing after a fixed 2-second pause whenever the connection drops. Intended to run in
// its own goroutine for the process lifetime.
func (t *Transport) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := t.dialAndServe(ctx); err != nil {
			t.log.Warn("hmi bus connection lost", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (t *Transport) dialAndServe(ctx context.Context) error {
	var conn net.Conn
	err := t.breaker.Execute(func() error {
		c, dialErr := net.DialTimeout("tcp", t.addr, t.dialTimeout)
		if dialErr != nil {
			return dialErr
		}
		conn = c
		return nil
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	t.mu.Lock()
	t.conn = conn
	t.enc = json.NewEncoder(conn)
	t.mu.Unlock()

	dec := json.NewDecoder(conn)
	for {
		var cmd busproto.Command
		if err := dec.Decode(&cmd); err != nil {
			t.mu.Lock()
			t.conn = nil
			t.enc = nil
			t.mu.Unlock()
			return err
		}
		if !t.dispatcher.SubmitHMI(ctx, cmd) {
			return nil
		}
	}
}

func (t *Transport) writeFrame(v any) error {
	t.mu.Lock()
	enc := t.enc
	t.mu.Unlock()
	if enc == nil {
		return net.ErrClosed
	}
	return t.breaker.Execute(func() error { return enc.Encode(v) })
}

// SendRequest implements core.HMISender.
func (t *Transport) SendRequest(req busproto.Request) error { return t.writeFrame(req) }

// SendResponse implements core.HMISender.
func (t *Transport) SendResponse(resp busproto.Response) error { return t.writeFrame(resp) }

// SendNotification implements core.HMISender.
func (t *Transport) SendNotification(n busproto.Notification) error { return t.writeFrame(n) }
