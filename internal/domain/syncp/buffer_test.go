package syncp

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndDrainClearsQueue(t *testing.T) {
	b := New(1, 4, nil)
	defer b.Stop()

	b.Append(1, "line-a")
	b.AppendAll(1, []string{"line-b", "line-c"})

	lines := b.Drain(1)
	assert.Equal(t, []string{"line-a", "line-b", "line-c"}, lines)
	assert.Empty(t, b.Drain(1))
}

func TestSetRawAndRaw(t *testing.T) {
	b := New(1, 4, nil)
	defer b.Stop()

	assert.Nil(t, b.Raw())
	b.SetRaw([]byte("payload"))
	assert.Equal(t, []byte("payload"), b.Raw())
}

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	// Zero workers: nothing drains the job channel, so the second Enqueue
	// past capacity must be dropped rather than block the caller.
	b := New(0, 1, nil)
	defer b.Stop()

	ok := b.Enqueue(Job{AppID: 1, URL: "example.com:9000"})
	require.True(t, ok)

	ok = b.Enqueue(Job{AppID: 1, URL: "example.com:9000"})
	assert.False(t, ok, "job queue is full, Enqueue must not block or panic")
}

func TestWorkerDeliversResultOnSuccessfulSend(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan struct{})
	go func() {
		conn, acceptErr := ln.Accept()
		if acceptErr == nil {
			defer conn.Close()
			buf := make([]byte, 16)
			conn.Read(buf)
		}
		close(accepted)
	}()

	b := New(1, 4, nil)
	defer b.Stop()

	ok := b.Enqueue(Job{AppID: 5, URL: ln.Addr().String(), Lines: []string{"hello"}})
	require.True(t, ok)

	select {
	case res := <-b.Results():
		assert.Equal(t, uint32(5), res.AppID)
		assert.True(t, res.Success)
		assert.NoError(t, res.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
	<-accepted
}

func TestWorkerDeliversFailureResultWhenDestinationUnreachable(t *testing.T) {
	b := New(1, 4, nil)
	defer b.Stop()

	ok := b.Enqueue(Job{AppID: 6, URL: "127.0.0.1:1", Lines: []string{"hi"}})
	require.True(t, ok)

	select {
	case res := <-b.Results():
		assert.Equal(t, uint32(6), res.AppID)
		assert.False(t, res.Success)
		assert.Error(t, res.Err)
	case <-time.After(15 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestSplitHostPortParsesHostAndPort(t *testing.T) {
	host, port := splitHostPort("example.com:9000")
	assert.Equal(t, "example.com", host)
	assert.Equal(t, "9000", port)
}

func TestSplitHostPortDefaultsToPort80WithoutColon(t *testing.T) {
	host, port := splitHostPort("example.com")
	assert.Equal(t, "example.com", host)
	assert.Equal(t, "80", port)
}

func TestSplitHostPortDefaultsWhenSuffixIsNotNumeric(t *testing.T) {
	host, port := splitHostPort("http://example.com")
	assert.Equal(t, "http://example.com", host)
	assert.Equal(t, "80", port)
}
