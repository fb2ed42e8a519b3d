// Package dispatch implements the two bounded FIFO queues described in
// spec §4.4: mobile-inbound and HMI-inbound, each drained by exactly one
// consumer goroutine. Handlers are run to completion with no await points
// mid-handler; the single logical mutex serializing Registry/
// CorrelationTables mutation is owned by the handler implementations
// (internal/core), not by the queues themselves — the dispatcher's job is
// purely fair, non-dropping delivery.
package dispatch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/metrics"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
)

// MobileHandlerFunc processes one mobile-inbound item to completion.
type MobileHandlerFunc func(mobile.RpcRequest)

// HMIHandlerFunc processes one HMI-inbound item to completion.
type HMIHandlerFunc func(hmi.Command)

// Dispatcher owns the two bounded queues and their single consumers.
type Dispatcher struct {
	mobileQueue chan mobile.RpcRequest
	hmiQueue    chan hmi.Command

	mobileHandler MobileHandlerFunc
	hmiHandler    HMIHandlerFunc

	metrics *metrics.Metrics
	log     *zap.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New builds a Dispatcher with bounded queue capacities. Handlers are
// wired after construction via SetMobileHandler/SetHMIHandler since core
// and dispatch have a circular dependency at wiring time (the transports
// core sends through submit into a dispatcher; dispatch needs core's handlers).
func New(mobileCapacity, hmiCapacity int, m *metrics.Metrics, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		mobileQueue: make(chan mobile.RpcRequest, mobileCapacity),
		hmiQueue:    make(chan hmi.Command, hmiCapacity),
		metrics:     m,
		log:         log,
	}
}

// SetMobileHandler wires the mobile-inbound consumer's handler.
func (d *Dispatcher) SetMobileHandler(fn MobileHandlerFunc) { d.mobileHandler = fn }

// SetHMIHandler wires the HMI-inbound consumer's handler.
func (d *Dispatcher) SetHMIHandler(fn HMIHandlerFunc) { d.hmiHandler = fn }

// Start launches the two consumer goroutines. Must be called after both
// handlers are wired.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(2)
	go d.consumeMobile(ctx)
	go d.consumeHMI(ctx)
}

// SubmitMobile enqueues a mobile-inbound item, blocking if the queue is
// full (spec §4.4: "must never drop"). Returns false only when ctx is done
// before the item is queued; Stop does not cause later submissions to be
// refused.
func (d *Dispatcher) SubmitMobile(ctx context.Context, req mobile.RpcRequest) bool {
	select {
	case d.mobileQueue <- req:
		if d.metrics != nil {
			d.metrics.MobileQueueDepth.Set(float64(len(d.mobileQueue)))
		}
		return true
	case <-ctx.Done():
		return false
	}
}

// SubmitHMI enqueues an HMI-inbound item, blocking if the queue is full.
func (d *Dispatcher) SubmitHMI(ctx context.Context, cmd hmi.Command) bool {
	select {
	case d.hmiQueue <- cmd:
		if d.metrics != nil {
			d.metrics.HMIQueueDepth.Set(float64(len(d.hmiQueue)))
		}
		return true
	case <-ctx.Done():
		return false
	}
}

// Stop cancels both consumers and waits for them to drain their current
// item. Queued-but-undrained items are abandoned, and the queues stay open:
// SubmitMobile/SubmitHMI still accept items until a queue is full.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}

func (d *Dispatcher) consumeMobile(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-d.mobileQueue:
			d.runMobile(req)
		}
	}
}

func (d *Dispatcher) consumeHMI(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-d.hmiQueue:
			d.runHMI(cmd)
		}
	}
}

func (d *Dispatcher) runMobile(req mobile.RpcRequest) {
	if d.mobileHandler == nil {
		return
	}
	start := time.Now()
	d.mobileHandler(req)
	if d.metrics != nil {
		d.metrics.ObserveHandler("mobile", time.Since(start))
		d.metrics.MobileQueueDepth.Set(float64(len(d.mobileQueue)))
	}
}

func (d *Dispatcher) runHMI(cmd hmi.Command) {
	if d.hmiHandler == nil {
		return
	}
	start := time.Now()
	d.hmiHandler(cmd)
	if d.metrics != nil {
		d.metrics.ObserveHandler("hmi", time.Since(start))
		d.metrics.HMIQueueDepth.Set(float64(len(d.hmiQueue)))
	}
}
