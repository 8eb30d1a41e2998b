package handler

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/marketplace-be/internal/api/storage"
)

func TestTaskCursorRoundTrip(t *testing.T) {
	original := &storage.TaskCursor{
		CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 123456789, time.UTC),
		TaskID:    "task-42",
	}

	encoded, err := EncodeTaskCursor(original)
	require.NoError(t, err)

	decoded, err := DecodeTaskCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.True(t, decoded.CreatedAt.Equal(original.CreatedAt))
	assert.Equal(t, original.TaskID, decoded.TaskID)
}

func TestDecodeTaskCursor(t *testing.T) {
	t.Run("empty cursor means first page", func(t *testing.T) {
		cursor, err := DecodeTaskCursor("")
		require.NoError(t, err)
		assert.Nil(t, cursor)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, err := DecodeTaskCursor("not-base64!!!")
		assert.Error(t, err)
	})

	t.Run("rejects the wrong number of parts", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("12345"))
		_, err := DecodeTaskCursor(encoded)
		assert.Error(t, err)
	})

	t.Run("rejects a non-numeric timestamp", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("yesterday|task-1"))
		_, err := DecodeTaskCursor(encoded)
		assert.Error(t, err)
	})
}
