package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"go.uber.org/zap"
)

// LocalAttachmentStore implements port.AttachmentStore on the local
// filesystem. Handles are opaque relative paths below baseDir; callers never
// see or choose the on-disk layout.
type LocalAttachmentStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalAttachmentStore creates a new LocalAttachmentStore
func NewLocalAttachmentStore(baseDir string, logger *zap.Logger) port.AttachmentStore {
	return &LocalAttachmentStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes the document under a freshly generated handle
func (s *LocalAttachmentStore) Save(ctx context.Context, filename string, content []byte) (string, error) {
	handle, err := newHandle(filename)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.baseDir, handle)
	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		s.logger.Error("Failed to create attachment directory",
			zap.String("path", filepath.Dir(fullPath)),
			zap.Error(err))
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write attachment",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	s.logger.Debug("Attachment saved",
		zap.String("handle", handle),
		zap.Int("size", len(content)))

	return handle, nil
}

// Read returns the document content for a handle
func (s *LocalAttachmentStore) Read(ctx context.Context, handle string) ([]byte, error) {
	fullPath := filepath.Join(s.baseDir, handle)
	if err := s.validatePath(fullPath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		s.logger.Error("Failed to read attachment",
			zap.String("handle", handle),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return content, nil
}

// Delete removes the document for a handle. Deleting a handle that no longer
// exists succeeds.
func (s *LocalAttachmentStore) Delete(ctx context.Context, handle string) error {
	fullPath := filepath.Join(s.baseDir, handle)
	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete attachment",
			zap.String("handle", handle),
			zap.Error(err))
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	return nil
}

// newHandle builds a collision-free handle, sharded by month so a single
// directory never collects every document.
func newHandle(filename string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate handle: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	now := time.Now()
	return filepath.Join(
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		hex.EncodeToString(buf)+ext,
	), nil
}

// validatePath checks that the path stays within baseDir
func (s *LocalAttachmentStore) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("handle escapes base directory: %s", fullPath)
	}

	return nil
}

// Verify interface compliance
var _ port.AttachmentStore = (*LocalAttachmentStore)(nil)
