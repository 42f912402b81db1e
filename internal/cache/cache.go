// Package cache keeps HTTP responses fetched by Lua selectors on disk for a week.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/where"
)

const TTL = 7 * 24 * time.Hour

// Dir is the response cache directory.
func Dir() string {
	dir := filepath.Join(where.Cache(), "http")
	_ = filesystem.API().MkdirAll(dir, os.ModePerm)
	return dir
}

// Key derives a stable file name from a request.
func Key(method, url, body string) string {
	hash := sha256.Sum256([]byte(strings.ToUpper(method) + " " + url + "\n" + body))
	return hex.EncodeToString(hash[:])
}

// Read decodes a fresh entry into target and reports whether it did.
func Read(key string, target any) bool {
	path := filepath.Join(Dir(), key)

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

// Write stores data under key, swapping the file in atomically.
func Write(key string, data any) error {
	path := filepath.Join(Dir(), key)
	tmp := path + ".tmp"

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(tmp, encoded, 0o644); err != nil {
		return err
	}

	return filesystem.API().Rename(tmp, path)
}

// CollectGarbage removes expired entries in the background.
func CollectGarbage() {
	go func() {
		afs := filesystem.API()
		_ = afs.Walk(Dir(), func(path string, info fs.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > TTL {
				_ = afs.Remove(path)
			}
			return nil
		})
	}()
}
