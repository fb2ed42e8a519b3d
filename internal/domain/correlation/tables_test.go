package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutboundRecordResolveForget(t *testing.T) {
	tb := New(nil)
	tb.RecordOutbound(100, 7)

	session, ok := tb.ResolveOutbound(100)
	assert.True(t, ok)
	assert.Equal(t, uint32(7), session)

	tb.ForgetOutbound(100)
	_, ok = tb.ResolveOutbound(100)
	assert.False(t, ok)
}

func TestButtonSubscriptionLastWriterWins(t *testing.T) {
	tb := New(nil)
	tb.SubscribeButton("OK", 1)
	tb.SubscribeButton("OK", 2)

	session, ok := tb.ResolveButton("OK")
	assert.True(t, ok)
	assert.Equal(t, uint32(2), session)
}

func TestUnsubscribeButtonNoOpWhenNotCurrentHolder(t *testing.T) {
	tb := New(nil)
	tb.SubscribeButton("OK", 1)
	tb.SubscribeButton("OK", 2) // 2 displaces 1

	tb.UnsubscribeButton("OK", 1) // stale unsubscribe from displaced session
	session, ok := tb.ResolveButton("OK")
	assert.True(t, ok)
	assert.Equal(t, uint32(2), session, "stale unsubscribe must not release the current holder's subscription")

	tb.UnsubscribeButton("OK", 2)
	_, ok = tb.ResolveButton("OK")
	assert.False(t, ok)
}

func TestDropAllForSweepsEveryTable(t *testing.T) {
	tb := New(nil)
	tb.RecordOutbound(1, 7)
	tb.RecordCommand(1, 42)
	tb.SubscribeButton("OK", 7)
	tb.RecordDevice(7, "usb-0")

	tb.RecordOutbound(2, 8)
	tb.SubscribeButton("SEEKLEFT", 8)

	tb.DropAllFor(7)

	_, ok := tb.ResolveOutbound(1)
	assert.False(t, ok)
	_, ok = tb.ResolveCommand(1)
	assert.False(t, ok)
	_, ok = tb.ResolveButton("OK")
	assert.False(t, ok)
	_, ok = tb.ResolveDevice(7)
	assert.False(t, ok)

	// session 8's entries must survive.
	_, ok = tb.ResolveOutbound(2)
	assert.True(t, ok)
	_, ok = tb.ResolveButton("SEEKLEFT")
	assert.True(t, ok)
}

func TestSizesReflectsMapContents(t *testing.T) {
	tb := New(nil)
	tb.RecordOutbound(1, 7)
	tb.RecordCommand(1, 42)
	tb.SubscribeButton("OK", 7)
	tb.RecordDevice(7, "usb-0")

	outbound, cmd, buttons, devices := tb.Sizes()
	assert.Equal(t, 1, outbound)
	assert.Equal(t, 1, cmd)
	assert.Equal(t, 1, buttons)
	assert.Equal(t, 1, devices)
}
