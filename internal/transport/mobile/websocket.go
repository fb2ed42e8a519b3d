// Package mobile implements the mobile-facing WebSocket transport: it
// upgrades incoming HTTP connections, assigns each one a session key, and
// shuttles Envelope frames between the socket and the dispatcher's
// mobile-inbound queue. It is the concrete MobileSender the core dials back
// through for responses and notifications.
package mobile

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/latticeworks/appmgr/internal/config"
	"github.com/latticeworks/appmgr/internal/dispatch"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
)

// wireEnvelope is what the mobile client actually sends: everything in
// mobile.Envelope except SessionKey, which the transport assigns at
// connection time rather than trusting the client to supply it.
type wireEnvelope struct {
	Version       mobile.Version     `json:"protocolVersion"`
	Method        mobile.MethodID    `json:"method"`
	Type          mobile.MessageType `json:"type"`
	CorrelationID uint32             `json:"correlationID"`
	Payload       json.RawMessage    `json:"payload"`
	BinaryData    []byte             `json:"binaryData,omitempty"`
}

// outEnvelope is what the transport writes back to the client.
type outEnvelope struct {
	SessionKey    uint32          `json:"sessionKey"`
	Method        mobile.MethodID `json:"method"`
	Type          string          `json:"type"`
	CorrelationID uint32          `json:"correlationID"`
	Payload       json.RawMessage `json:"payload"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Transport owns the live connection set, keyed by the session key each
// connection is assigned on upgrade.
type Transport struct {
	dispatcher *dispatch.Dispatcher
	log        *zap.Logger
	rateLimit  config.RateLimitConfig

	nextSessionKey uint32

	mu       sync.RWMutex
	conns    map[uint32]*websocket.Conn
	limiters map[uint32]*rate.Limiter
}

// New builds a Transport bound to a dispatcher; it does not start serving
// until HandleConnection is registered against an HTTP route.
func New(d *dispatch.Dispatcher, log *zap.Logger) *Transport {
	return NewWithRateLimit(d, log, config.RateLimitConfig{Enabled: false})
}

// NewWithRateLimit builds a Transport that additionally admission-controls
// each session's inbound rate per rl (spec §6: a misbehaving mobile app
// must not be able to starve the shared dispatcher queues).
func NewWithRateLimit(d *dispatch.Dispatcher, log *zap.Logger, rl config.RateLimitConfig) *Transport {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transport{
		dispatcher: d,
		log:        log,
		rateLimit:  rl,
		conns:      make(map[uint32]*websocket.Conn),
		limiters:   make(map[uint32]*rate.Limiter),
	}
}

// HandleConnection is the gin route handler for the mobile WebSocket
// endpoint. One goroutine per connection, reading until the socket closes;
// spec §1 treats this transport as out-of-scope, so framing/backpressure
// choices here are the transport's own, not the core's.
func (t *Transport) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		t.log.Warn("mobile websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionKey := atomic.AddUint32(&t.nextSessionKey, 1)
	t.mu.Lock()
	t.conns[sessionKey] = conn
	if t.rateLimit.Enabled {
		t.limiters[sessionKey] = rate.NewLimiter(rate.Limit(t.rateLimit.RequestsPerSecond), t.rateLimit.Burst)
	}
	t.mu.Unlock()
	t.log.Info("mobile session connected", zap.Uint32("session_key", sessionKey))

	defer func() {
		t.mu.Lock()
		delete(t.conns, sessionKey)
		delete(t.limiters, sessionKey)
		t.mu.Unlock()
		t.log.Info("mobile session disconnected", zap.Uint32("session_key", sessionKey))
	}()

	ctx := c.Request.Context()
	for {
		var env wireEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			t.log.Debug("mobile websocket read ended", zap.Uint32("session_key", sessionKey), zap.Error(err))
			return
		}
		if t.rateLimit.Enabled && !t.allow(sessionKey) {
			t.log.Warn("mobile session exceeded rate limit, dropping request", zap.Uint32("session_key", sessionKey))
			continue
		}
		req := mobile.FromEnvelope(mobile.Envelope{
			SessionKey:    sessionKey,
			Version:       env.Version,
			Method:        env.Method,
			Type:          env.Type,
			CorrelationID: env.CorrelationID,
			Payload:       env.Payload,
			BinaryData:    env.BinaryData,
		})
		if !t.dispatcher.SubmitMobile(ctx, req) {
			return
		}
	}
}

// allow reports whether sessionKey's rate limiter admits one more request.
func (t *Transport) allow(sessionKey uint32) bool {
	t.mu.RLock()
	lim, ok := t.limiters[sessionKey]
	t.mu.RUnlock()
	if !ok {
		return true
	}
	return lim.Allow()
}

func (t *Transport) writeTo(sessionKey uint32, env outEnvelope) error {
	t.mu.RLock()
	conn, ok := t.conns[sessionKey]
	t.mu.RUnlock()
	if !ok {
		return nil // session already gone; nothing to deliver
	}
	env.SessionKey = sessionKey
	return conn.WriteJSON(env)
}

// SendResponse implements core.MobileSender.
func (t *Transport) SendResponse(sessionKey uint32, version mobile.Version, method mobile.MethodID, correlationID uint32, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return t.writeTo(sessionKey, outEnvelope{
		Method:        method,
		Type:          string(mobile.TypeResponse),
		CorrelationID: correlationID,
		Payload:       raw,
	})
}

// SendNotification implements core.MobileSender.
func (t *Transport) SendNotification(sessionKey uint32, version mobile.Version, method mobile.MethodID, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return t.writeTo(sessionKey, outEnvelope{
		Method:  method,
		Type:    string(mobile.TypeNotification),
		Payload: raw,
	})
}
