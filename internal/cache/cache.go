// Package cache keeps short-lived provider responses on disk, one file per key.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/where"
)

// TTL is how long an entry stays valid.
const TTL = time.Hour

func dir() string {
	path := filepath.Join(where.Cache(), "responses")
	_ = filesystem.API().MkdirAll(path, os.ModePerm)
	return path
}

// GenerateKey hashes a query and provider pair into a file-safe key.
func GenerateKey(query, provider string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(query, " ", "")) + provider
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes a fresh entry into target. It reports false on a miss or an expired entry.
func Read(key string, target any) bool {
	path := filepath.Join(dir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data under key, swapping a temporary file into place.
func Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return filesystem.WriteAtomic(filepath.Join(dir(), key), encoded, 0o644)
}

// CollectGarbage removes expired entries in the background.
func CollectGarbage() {
	go func() {
		fs := filesystem.API()
		_ = fs.Walk(dir(), func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > TTL {
				_ = fs.Remove(path)
			}
			return nil
		})
	}()
}
