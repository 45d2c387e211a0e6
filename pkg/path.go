package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Prefix returns the directory name used under the user configuration and
// cache directories. It is the base name of the running executable without
// its extension or leading dots. Debugger builds (__debug_bin) and go test
// binaries (*.test) use [Name] instead.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}

		return prefixOf(exe)
	},
)

func prefixOf(exe string) string {
	base := filepath.Base(exe)
	id := strings.TrimLeft(base, ".")
	stem := strings.TrimSuffix(id, filepath.Ext(id))

	if strings.HasPrefix(base, "__debug_bin") ||
		strings.HasSuffix(base, ".test") || strings.HasSuffix(stem, ".test") {
		return Name
	}

	if stem != "" {
		return stem
	}

	return Name
}

// ConfigDir returns the directory holding config.yaml, such as
// $XDG_CONFIG_HOME/smartscript.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the directory holding the REPL history and profiles, such
// as $XDG_CACHE_HOME/smartscript.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// userDir joins [Prefix] to the directory reported by base. When base fails
// it falls back to hidden under the home directory, then to the working
// directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
