// Package platform resolves the base directories a host expects
// applications to use for cached, persistent, and temporary data.
//
// The dirstore core never decides storage policy itself; it only
// appends its namespace to a base path resolved here (or supplied by
// the caller directly).
package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// Environ returns the process environment as a map.
func Environ() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	return env
}

// CacheDir returns the user cache base directory.
// Uses $XDG_CACHE_HOME if set, otherwise ~/.cache, otherwise the
// system temporary directory.
func CacheDir(env map[string]string) string {
	if xdg := env["XDG_CACHE_HOME"]; xdg != "" {
		return xdg
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".cache")
	}

	return os.TempDir()
}

// DataDir returns the user data base directory.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share, otherwise the
// system temporary directory.
func DataDir(env map[string]string) string {
	if xdg := env["XDG_DATA_HOME"]; xdg != "" {
		return xdg
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share")
	}

	return os.TempDir()
}

// TempDir returns the system temporary directory.
func TempDir() string {
	return os.TempDir()
}
