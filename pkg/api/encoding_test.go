package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeContent(t *testing.T) {
	text := "Date,Name,Weight\n2026-01-01,Пользователь,71\n"

	decoded, err := DecodeContent(EncodeContent([]byte(text)))
	require.NoError(t, err)
	assert.Equal(t, text, string(decoded))
}

func TestEncodeContentWrapped(t *testing.T) {
	data := []byte(strings.Repeat("2026-01-01,User,71\n", 10))

	wrapped := EncodeContentWrapped(data)

	for _, line := range strings.Split(strings.TrimSuffix(wrapped, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), lineWidth)
	}

	decoded, err := DecodeContent(wrapped)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestEncodeContentWrapped_Empty(t *testing.T) {
	assert.Equal(t, "", EncodeContentWrapped(nil))

	decoded, err := DecodeContent("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeContent_Invalid(t *testing.T) {
	_, err := DecodeContent("not base64 !!!")
	assert.Error(t, err)
}
