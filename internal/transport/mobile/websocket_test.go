package mobile

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/appmgr/internal/config"
	"github.com/latticeworks/appmgr/internal/dispatch"
	"github.com/latticeworks/appmgr/internal/metrics"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
)

func newTestServer(t *testing.T, tr *Transport) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", tr.HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandleConnectionForwardsFramesToDispatcher(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	d := dispatch.New(4, 4, m, nil)
	received := make(chan mobile.RpcRequest, 1)
	d.SetMobileHandler(func(req mobile.RpcRequest) { received <- req })
	d.SetHMIHandler(func(hmi.Command) {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := New(d, nil)
	srv := newTestServer(t, tr)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(wireEnvelope{
		Version: mobile.V2,
		Method:  mobile.MethodRegisterAppInterface,
		Payload: []byte(`{"appName":"Nav"}`),
	}))

	d.Start(ctx)
	defer d.Stop()

	select {
	case req := <-received:
		require.Equal(t, mobile.MethodRegisterAppInterface, req.Method)
		require.True(t, req.IsV2())
	case <-time.After(2 * time.Second):
		t.Fatal("request was never forwarded to the dispatcher")
	}
}

func TestHandleConnectionDropsFramesOverRateLimit(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	d := dispatch.New(16, 16, m, nil)
	var count int32
	d.SetMobileHandler(func(mobile.RpcRequest) { atomic.AddInt32(&count, 1) })
	d.SetHMIHandler(func(hmi.Command) {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := NewWithRateLimit(d, nil, config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 1})
	srv := newTestServer(t, tr)
	conn := dial(t, srv)

	d.Start(ctx)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, conn.WriteJSON(wireEnvelope{
			Version: mobile.V2,
			Method:  mobile.MethodSubscribeButton,
			Payload: []byte(`{}`),
		}))
	}

	time.Sleep(200 * time.Millisecond)
	got := atomic.LoadInt32(&count)
	require.Less(t, got, int32(5), "burst of 1 must not let all 5 frames through")
	require.GreaterOrEqual(t, got, int32(1))
}
