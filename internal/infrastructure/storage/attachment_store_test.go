package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalAttachmentStore_SaveAndRead(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	store := NewLocalAttachmentStore(tempDir, logger)
	ctx := context.Background()

	t.Run("round-trips content through a handle", func(t *testing.T) {
		content := []byte("PDF content here")

		handle, err := store.Save(ctx, "mission_order.pdf", content)
		require.NoError(t, err)
		assert.NotEmpty(t, handle)
		assert.Equal(t, ".pdf", filepath.Ext(handle))

		read, err := store.Read(ctx, handle)
		require.NoError(t, err)
		assert.Equal(t, content, read)
	})

	t.Run("generates distinct handles for the same filename", func(t *testing.T) {
		h1, err := store.Save(ctx, "mission_order.pdf", []byte("first"))
		require.NoError(t, err)
		h2, err := store.Save(ctx, "mission_order.pdf", []byte("second"))
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2)
	})

	t.Run("reading an unknown handle fails", func(t *testing.T) {
		_, err := store.Read(ctx, "2024/01/deadbeef.pdf")
		assert.Error(t, err)
	})
}

func TestLocalAttachmentStore_Delete(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	store := NewLocalAttachmentStore(tempDir, logger)
	ctx := context.Background()

	t.Run("removes the stored document", func(t *testing.T) {
		handle, err := store.Save(ctx, "order.pdf", []byte("content"))
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, handle))

		_, err = os.Stat(filepath.Join(tempDir, handle))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing handle succeeds", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "2024/01/missing.pdf"))
	})
}

func TestLocalAttachmentStore_PathTraversal(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	store := NewLocalAttachmentStore(tempDir, logger)
	ctx := context.Background()

	t.Run("rejects a handle escaping the base directory", func(t *testing.T) {
		_, err := store.Read(ctx, filepath.Join("..", "..", "etc", "passwd"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "escapes base directory")
	})
}
