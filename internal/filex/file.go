// Package filex contains filesystem helpers for files the CLI writes.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// TimestampedName builds "<prefix>-20060102-150405<ext>" for now.
func TimestampedName(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s%s", prefix, now.Format("20060102-150405"), ext)
}
