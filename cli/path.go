package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/unitgen/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the name of the directory holding unitgen's
// configuration and cache files.
//
// By default, basePrefix is the base name of the executable file unless it
// matches one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with
//     [pkg.Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//   - a test binary ("*.test"): replaced with [pkg.Name]
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		base := filepath.Base(id)
		if strings.HasSuffix(base, ".test") {
			return pkg.Name
		}

		id = strings.TrimSuffix(base, filepath.Ext(base))

		for _, sub := range []struct {
			rex *regexp.Regexp
			rep string
		}{
			{regexp.MustCompile(`^__debug_bin\d+$`), pkg.Name}, // dlv default output
			{regexp.MustCompile(`^\.+`), ""},                   // remove leading dot(s)
		} {
			id = sub.rex.ReplaceAllString(id, sub.rep)
		}

		if id == "" {
			return pkg.Name
		}

		return id
	},
)

// userDir returns dir from the given lookup, falling back to a dot-directory
// under the user's home, then to the working directory.
func userDir(lookup func() (string, error), dot string) string {
	dir, err := lookup()
	if err == nil {
		return dir
	}

	dir, err = os.UserHomeDir()
	if err == nil {
		return filepath.Join(dir, dot)
	}

	dir, err = os.Getwd()
	if err != nil {
		return "."
	}

	return dir
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), basePrefix())
	},
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), basePrefix())
	},
)

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		err := os.MkdirAll(dir, defaultDirMode)
		if err != nil {
			return err
		}
	}

	return nil
}
