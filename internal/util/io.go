package util

import (
	"os"
	"path/filepath"
	"strings"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
