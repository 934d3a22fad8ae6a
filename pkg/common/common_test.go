package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURIRoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	uri := EncodeDataURI("image/png", raw)
	assert.True(t, IsDataURI(uri))

	mediaType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, raw, data)
}

func TestEncodeDataURIDefaultsMediaType(t *testing.T) {
	uri := EncodeDataURI("", []byte("x"))
	mediaType, _, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", mediaType)
}

func TestDecodeDataURIRejectsGarbage(t *testing.T) {
	for _, bad := range []string{
		"http://example.com/image.png",
		"data:image/png",
		"data:image/png;base64,!!!not-base64!!!",
		"data:image/png,plain-payload",
	} {
		_, _, err := DecodeDataURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsDataURI(t *testing.T) {
	assert.True(t, IsDataURI("data:image/jpeg;base64,AAAA"))
	assert.False(t, IsDataURI("image/jpeg;base64,AAAA"))
	assert.False(t, IsDataURI("data:image/jpeg,AAAA"))
}
