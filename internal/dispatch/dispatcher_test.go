package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/appmgr/internal/metrics"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
)

func testMetrics() *metrics.Metrics {
	return metrics.NewWithRegisterer(prometheus.NewRegistry())
}

func TestSubmitMobileDeliversToHandler(t *testing.T) {
	d := New(4, 4, testMetrics(), nil)

	var mu sync.Mutex
	var got []uint32
	done := make(chan struct{}, 1)
	d.SetMobileHandler(func(req mobile.RpcRequest) {
		mu.Lock()
		got = append(got, req.SessionKey)
		mu.Unlock()
		done <- struct{}{}
	})
	d.SetHMIHandler(func(hmi.Command) {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	ok := d.SubmitMobile(ctx, mobile.RpcRequest{SessionKey: 3})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint32{3}, got)
}

func TestSubmitHMIDeliversToHandler(t *testing.T) {
	d := New(4, 4, testMetrics(), nil)

	done := make(chan hmi.Command, 1)
	d.SetMobileHandler(func(mobile.RpcRequest) {})
	d.SetHMIHandler(func(cmd hmi.Command) { done <- cmd })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	id := uint32(9)
	ok := d.SubmitHMI(ctx, hmi.Command{ID: &id})
	require.True(t, ok)

	select {
	case cmd := <-done:
		require.NotNil(t, cmd.ID)
		assert.Equal(t, uint32(9), *cmd.ID)
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}
}

func TestSubmitMobileReturnsFalseWhenContextCancelledBeforeRoom(t *testing.T) {
	d := New(1, 1, testMetrics(), nil)
	// No Start call: nothing drains the queue, so the first Submit fills the
	// single slot and the second must block until ctx is cancelled.
	ctx, cancel := context.WithCancel(context.Background())

	ok := d.SubmitMobile(ctx, mobile.RpcRequest{SessionKey: 1})
	require.True(t, ok)

	cancel()
	ok = d.SubmitMobile(ctx, mobile.RpcRequest{SessionKey: 2})
	assert.False(t, ok)
}

func TestStopStopsConsumersAndWaitGroupReturns(t *testing.T) {
	d := New(4, 4, testMetrics(), nil)
	d.SetMobileHandler(func(mobile.RpcRequest) {})
	d.SetHMIHandler(func(hmi.Command) {})

	ctx := context.Background()
	d.Start(ctx)

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return promptly")
	}
}
