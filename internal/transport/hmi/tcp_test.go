package hmi

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/appmgr/internal/dispatch"
	"github.com/latticeworks/appmgr/internal/metrics"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	busproto "github.com/latticeworks/appmgr/internal/protocol/hmi"
)

func TestSendRequestFailsBeforeConnected(t *testing.T) {
	d := dispatch.New(1, 1, nil, nil)
	tr := New("127.0.0.1:0", time.Second, d, nil)
	err := tr.SendRequest(busproto.Request{ID: 1, Method: "UI.Show"})
	assert.Error(t, err)
}

func TestRunDeliversDecodedFramesToDispatcher(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	d := dispatch.New(4, 4, m, nil)

	received := make(chan busproto.Command, 1)
	d.SetMobileHandler(func(mobile.RpcRequest) {})
	d.SetHMIHandler(func(cmd busproto.Command) { received <- cmd })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	tr := New(ln.Addr().String(), time.Second, d, nil)
	go tr.Run(ctx)

	conn, err := ln.Accept()
	require.NoError(t, err)
	defer conn.Close()

	id := uint32(11)
	require.NoError(t, json.NewEncoder(conn).Encode(busproto.Command{ID: &id, Method: "UI.OnCommand"}))

	select {
	case cmd := <-received:
		require.NotNil(t, cmd.ID)
		assert.Equal(t, uint32(11), *cmd.ID)
		assert.Equal(t, busproto.Method("UI.OnCommand"), cmd.Method)
	case <-time.After(2 * time.Second):
		t.Fatal("frame was never delivered to the HMI handler")
	}
}
