// Package dataset stores uploaded schedule files on local disk.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"loadboard/domain/core"
	"loadboard/internal/errors"
)

// StorageConfig holds configuration for file storage
type StorageConfig struct {
	BasePath          string   // Directory uploads are written to
	MaxFileSize       int64    // Maximum file size in bytes
	AllowedExtensions []string // Lower-case extensions including the dot
	ChunkSize         int      // Copy buffer size
}

// DefaultStorageConfig returns sensible defaults
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		BasePath:          "uploads",
		MaxFileSize:       20 * 1024 * 1024, // 20MB
		AllowedExtensions: []string{".xlsx", ".csv"},
		ChunkSize:         1024 * 1024, // 1MB
	}
}

// StoredFile describes a saved upload
type StoredFile struct {
	ID           core.UploadID `json:"id"`
	OriginalName string        `json:"original_name"`
	Path         string        `json:"path"`
	Size         int64         `json:"size"`
	StoredAt     time.Time     `json:"stored_at"`
}

// LocalFileStorage keeps uploads under a single directory
type LocalFileStorage struct {
	config *StorageConfig
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(config *StorageConfig) *LocalFileStorage {
	if config == nil {
		config = DefaultStorageConfig()
	}
	return &LocalFileStorage{config: config}
}

// Validate checks the upload name and size before anything is written
func (s *LocalFileStorage) Validate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(s.config.AllowedExtensions, ext) {
		return errors.UnsupportedFormat(filename)
	}
	if s.config.MaxFileSize > 0 && size > s.config.MaxFileSize {
		return errors.InvalidInput(fmt.Sprintf("%s is %d bytes, limit is %d", filename, size, s.config.MaxFileSize))
	}
	return nil
}

// Store saves a file to the local filesystem with a unique name
func (s *LocalFileStorage) Store(ctx context.Context, file io.Reader, filename string) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	// Generate unique filename to prevent conflicts
	id := core.NewUploadID()
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	baseName := strings.TrimSuffix(name, ext)
	timestamp := time.Now().Format("20060102_150405")
	uniqueName := fmt.Sprintf("%s_%s_%s%s", baseName, timestamp, id.String()[:8], strings.ToLower(ext))

	filePath := filepath.Join(s.config.BasePath, uniqueName)

	destFile, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	chunk := s.config.ChunkSize
	if chunk <= 0 {
		chunk = 32 * 1024
	}
	buf := make([]byte, chunk)
	src := file
	if s.config.MaxFileSize > 0 {
		src = io.LimitReader(file, s.config.MaxFileSize+1)
	}
	size, err := io.CopyBuffer(destFile, src, buf)
	if err != nil {
		os.Remove(filePath) // Clean up on failure
		return nil, fmt.Errorf("failed to copy file contents: %w", err)
	}
	if s.config.MaxFileSize > 0 && size > s.config.MaxFileSize {
		os.Remove(filePath)
		return nil, errors.InvalidInput(fmt.Sprintf("%s exceeds the %d byte limit", name, s.config.MaxFileSize))
	}

	return &StoredFile{
		ID:           id,
		OriginalName: name,
		Path:         filePath,
		Size:         size,
		StoredAt:     time.Now(),
	}, nil
}

// Latest returns the most recently modified upload, or "" when there is none
func (s *LocalFileStorage) Latest(ctx context.Context) (string, error) {
	entries, err := os.ReadDir(s.config.BasePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to list uploads: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(s.config.AllowedExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = filepath.Join(s.config.BasePath, e.Name())
			latestMod = info.ModTime()
		}
	}
	return latest, nil
}

// Delete removes a file from storage
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

