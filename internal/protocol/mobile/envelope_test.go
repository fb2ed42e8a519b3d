package mobile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvelopeRoutesV2PayloadByVersion(t *testing.T) {
	env := Envelope{
		SessionKey:    3,
		Version:       V2,
		Method:        MethodShow,
		CorrelationID: 7,
		Payload:       json.RawMessage(`{"mainField1":"hi"}`),
	}

	req := FromEnvelope(env)
	assert.True(t, req.IsV2())
	assert.False(t, req.IsV1())
	assert.Equal(t, json.RawMessage(`{"mainField1":"hi"}`), req.V2Payload)
	assert.Equal(t, uint32(3), req.SessionKey)
	assert.Equal(t, uint32(7), req.CorrelationID)
}

func TestFromEnvelopeDefaultsUntaggedVersionToV1(t *testing.T) {
	env := Envelope{
		SessionKey: 3,
		Method:     MethodShow,
		Payload:    json.RawMessage(`{}`),
	}

	req := FromEnvelope(env)
	assert.True(t, req.IsV1())
	assert.False(t, req.IsV2())
}

func TestFromEnvelopeCarriesBinaryDataThrough(t *testing.T) {
	env := Envelope{Version: V2, Method: MethodPutFile, BinaryData: []byte("bytes")}
	req := FromEnvelope(env)
	assert.Equal(t, []byte("bytes"), req.BinaryData)
}
