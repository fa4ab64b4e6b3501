package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// DirMode is the permission mode of directories created by [MkdirAll].
const DirMode os.FileMode = 0o700

var prefixRules = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d+$`), Name}, // dlv default output
	{regexp.MustCompile(`^\.+`), ""},
}

// Prefix returns the name used for the configuration and cache
// directories: the base name of the executable without its extension,
// with dlv's debug binary name mapped to [Name] and leading dots removed.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	return prefixOf(executable())
})

func executable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return os.Args[0]
}

func prefixOf(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	for _, rule := range prefixRules {
		id = rule.rex.ReplaceAllString(id, rule.rep)
	}

	if id == "" {
		return Name
	}

	return id
}

// ConfigDir returns the directory holding configuration files.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as the
// interactive history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir joins Prefix onto the directory reported by base, falling back
// to a hidden directory in $HOME and then to the working directory.
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

// ConfigPath joins elem onto [ConfigDir].
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// CachePath joins elem onto [CacheDir].
func CachePath(elem ...string) string {
	return filepath.Join(append([]string{CacheDir()}, elem...)...)
}

// MkdirAll creates the configuration and cache directories.
func MkdirAll() error {
	for _, dir := range []string{ConfigDir(), CacheDir()} {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return err
		}
	}

	return nil
}
