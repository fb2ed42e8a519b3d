// Package syncp implements SyncPBuffer (spec §4.7): a per-app queue of
// opaque encoded data lines plus a shared HMI-pushed raw payload, and the
// deferred-POST worker pool that flushes them to a `host:port` destination
// over TCP once HMI's SendData supplies a URL.
//
// The deferred send is a bounded worker pool draining a job channel
// (spec §9, "Background POST task": prefer a task executor over
// per-request thread spawning), not a goroutine per SendData call. It owns
// one circuit breaker shared by all destinations, kept separate
// from the HMI bus connection breaker so a broken SyncP destination cannot
// trip the core's own HMI connectivity.
package syncp

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/resilience"
)

// Job describes one deferred POST-equivalent flush: sleep `Timeout`, dial
// `URL`'s host:port, write every buffered line for AppID. Token is a
// caller-minted id.Generator.JobToken, carried through to Result purely for
// log correlation between the SendData call that queued the job and the
// worker that eventually ran it.
type Job struct {
	AppID   uint32
	URL     string
	Timeout time.Duration
	Lines   []string
	Token   string
}

// Result reports the outcome of a Job, delivered back through a callback
// so the caller can emit the bus response's result code without the worker
// pool needing to know about HMI wire types.
type Result struct {
	AppID   uint32
	Token   string
	Success bool
	Err     error
}

// Buffer accumulates per-app sync-P lines and one shared raw payload, and
// owns the bounded worker pool that flushes them. Confined to dispatcher
// threads for its map access; the worker pool itself runs off-dispatcher
// (spec §5: "TCP send in SyncP deferred task runs off the dispatcher").
type Buffer struct {
	lines map[uint32][]string
	raw   []byte

	jobs    chan Job
	results chan Result
	breaker *resilience.Breaker
	log     *zap.Logger

	workers int
	cancel  context.CancelFunc
}

// New builds a Buffer with a bounded job queue and starts workerCount
// worker goroutines. Callers must call Stop on shutdown to stop the workers.
func New(workerCount, queueCapacity int, log *zap.Logger) *Buffer {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Buffer{
		lines:   make(map[uint32][]string),
		jobs:    make(chan Job, queueCapacity),
		results: make(chan Result, queueCapacity),
		workers: workerCount,
		cancel:  cancel,
		log:     log,
		breaker: resilience.New("syncp-destination", resilience.Settings{
			ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 5 },
		}),
	}
	for i := 0; i < workerCount; i++ {
		go b.runWorker(ctx, i)
	}
	return b
}

// Append adds one encoded data line to appID's queue.
func (b *Buffer) Append(appID uint32, line string) {
	b.lines[appID] = append(b.lines[appID], line)
}

// AppendAll adds multiple lines at once.
func (b *Buffer) AppendAll(appID uint32, lines []string) {
	b.lines[appID] = append(b.lines[appID], lines...)
}

// SetRaw stores the HMI-pushed shared raw payload.
func (b *Buffer) SetRaw(data []byte) { b.raw = data }

// Raw returns the HMI-pushed shared raw payload.
func (b *Buffer) Raw() []byte { return b.raw }

// Drain removes and returns appID's buffered lines.
func (b *Buffer) Drain(appID uint32) []string {
	lines := b.lines[appID]
	delete(b.lines, appID)
	return lines
}

// Enqueue submits a deferred flush job. It never blocks the dispatcher: if
// the job queue is full the job is dropped and logged, matching the
// best-effort nature of the side channel (spec §4.7).
func (b *Buffer) Enqueue(job Job) bool {
	select {
	case b.jobs <- job:
		return true
	default:
		if b.log != nil {
			b.log.Warn("syncp job queue full, dropping deferred send", zap.Uint32("app_id", job.AppID))
		}
		return false
	}
}

// Results exposes the outcome channel so a caller (HmiHandlers) can log or
// meter completions; the bus response itself was already sent before data
// transmits (spec §4.7: "the response is sent before data actually
// transmits").
func (b *Buffer) Results() <-chan Result { return b.results }

// Stop cancels outstanding workers. In-flight jobs are abandoned.
func (b *Buffer) Stop() { b.cancel() }

func (b *Buffer) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-b.jobs:
			b.process(ctx, job)
		}
	}
}

func (b *Buffer) process(ctx context.Context, job Job) {
	if job.Timeout > 0 {
		select {
		case <-time.After(job.Timeout):
		case <-ctx.Done():
			return
		}
	}

	host, port := splitHostPort(job.URL)
	addr := net.JoinHostPort(host, port)

	err := b.breaker.Execute(func() error {
		conn, dialErr := net.DialTimeout("tcp", addr, 10*time.Second)
		if dialErr != nil {
			return dialErr
		}
		defer conn.Close()
		for _, line := range job.Lines {
			if _, writeErr := conn.Write([]byte(line)); writeErr != nil {
				return writeErr
			}
		}
		return nil
	})

	result := Result{AppID: job.AppID, Token: job.Token, Success: err == nil, Err: err}
	if err != nil && b.log != nil {
		b.log.Warn("syncp deferred send failed", zap.Uint32("app_id", job.AppID), zap.String("token", job.Token), zap.String("addr", addr), zap.Error(err))
	}
	select {
	case b.results <- result:
	default:
	}
}

// splitHostPort parses url by splitting on the first colon, defaulting to
// port 80 when none is present (spec §4.7: "url is parsed by splitting on
// the first ':'").
func splitHostPort(url string) (host, port string) {
	idx := strings.Index(url, ":")
	if idx < 0 {
		return url, "80"
	}
	host = url[:idx]
	rest := url[idx+1:]
	if _, err := strconv.Atoi(rest); err != nil {
		return url, "80"
	}
	return host, rest
}
