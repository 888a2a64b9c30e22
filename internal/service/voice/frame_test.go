package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	frames := map[string]*frame{
		"client request": {
			Type:          frameFullClientRequest,
			Flags:         flagNoSequence,
			Serialization: serializationJSON,
			Compression:   compressionNone,
			Payload:       []byte(`{"text":"hi"}`),
		},
		"last audio chunk": {
			Type:     frameAudioOnlyResp,
			Flags:    flagNegativeSequence,
			Sequence: -3,
			Payload:  []byte{0x1, 0x2, 0x3},
		},
		"session finished": {
			Type:          frameFullServerResp,
			Flags:         flagWithEvent,
			Serialization: serializationJSON,
			Event:         eventSessionFinished,
			SessionID:     "session-1",
			Payload:       []byte(`{}`),
		},
		"connection started": {
			Type:      frameFullServerResp,
			Flags:     flagWithEvent,
			Event:     eventConnectionStarted,
			ConnectID: "connect-1",
			Payload:   []byte(`{}`),
		},
		"error": {
			Type:      frameError,
			Flags:     flagNoSequence,
			ErrorCode: 45000001,
			Payload:   []byte("bad request"),
		},
	}

	for name, want := range frames {
		t.Run(name, func(t *testing.T) {
			got, err := decodeFrame(encodeFrame(want))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFrameFlags(t *testing.T) {
	assert.True(t, (&frame{Flags: flagLastNoSequence}).last())
	assert.True(t, (&frame{Flags: flagNegativeSequence}).last())
	assert.False(t, (&frame{Flags: flagPositiveSequence}).last())
	assert.True(t, (&frame{Flags: flagWithEvent | flagNegativeSequence}).hasEvent())
}

func TestFramePayloadGzip(t *testing.T) {
	compressed, err := gzipBytes([]byte("hello"))
	require.NoError(t, err)

	body, err := (&frame{Compression: compressionGzip, Payload: compressed}).payload()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	_, err = (&frame{Compression: 0b1111}).payload()
	assert.Error(t, err)
}

func TestDecodeFrameRejectsBadInput(t *testing.T) {
	_, err := decodeFrame([]byte{0x11})
	assert.ErrorContains(t, err, "too short")

	_, err = decodeFrame([]byte{0x21, 0x00, 0x00, 0x00})
	assert.ErrorContains(t, err, "unsupported protocol version")

	_, err = decodeFrame([]byte{0x11, 0xB0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05, 0x01})
	assert.Error(t, err)
}
