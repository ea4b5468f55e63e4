package main

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ProcessedFile records one pair file that was fully reconciled.
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	Rows        int       `json:"rows"`
	ProcessedAt time.Time `json:"processed_at"`
}

// SeedCache remembers processed files so unchanged inputs are not replayed.
type SeedCache struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: absolute file path
}

// loadSeedCache reads the cache file. A missing or empty file yields an empty cache.
func loadSeedCache(path string) (*SeedCache, error) {
	cache := &SeedCache{ProcessedFiles: make(map[string]ProcessedFile)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}
	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}
	return cache, nil
}

func (c *SeedCache) save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// seen reports whether path was processed with the same content hash.
func (c *SeedCache) seen(path, hash string) (ProcessedFile, bool) {
	pf, ok := c.ProcessedFiles[path]
	return pf, ok && hash != "" && pf.FileHash == hash
}

func (c *SeedCache) mark(path, hash string, rows int, at time.Time) {
	c.ProcessedFiles[path] = ProcessedFile{
		FilePath:    path,
		FileHash:    hash,
		Rows:        rows,
		ProcessedAt: at,
	}
}

// fileHash is the hex MD5 of the file contents.
func fileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
