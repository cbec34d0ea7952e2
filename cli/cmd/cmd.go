package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/unitgen/lang"
	"github.com/ardnew/unitgen/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command results: the kong application's
// Stdout when a kong context is stored in ctx, otherwise os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr is like stdout for diagnostics.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// loadInput loads the DSL source at path into a new tree.
//
// A missing input yields [ErrInputNotFound]; format and I/O errors are
// returned as-is. Rejected lines are not an error here: the caller inspects
// [lang.Loader.Rejected].
func loadInput(
	ctx context.Context,
	path string,
	opts ...lang.Option,
) (*lang.Loader, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", path)
	}

	if err != nil {
		return nil, ErrInputNotFound.
			Wrap(err).
			With(slog.String("file", path))
	}

	loader := lang.NewLoader(opts...)

	err = loader.Load(ctx, path)
	if err != nil && !errors.Is(err, lang.ErrUnrecognized) {
		return nil, err
	}

	return loader, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueFiles returns paths with later references to an already listed file
// removed. Paths that cannot be resolved are kept so that loading them
// reports the error.
func uniqueFiles(paths []string) []string {
	seen := make(map[fileKey]struct{}, len(paths))
	out := make([]string, 0, len(paths))

	for _, path := range paths {
		key, ok := resolveFileKey(path)
		if ok {
			if _, dup := seen[key]; dup {
				log.Debug("skip duplicate input", slog.String("file", path))

				continue
			}

			seen[key] = struct{}{}
		}

		out = append(out, path)
	}

	return out
}

// resolveFileKey resolves symlinks in path and returns its device/inode pair.
func resolveFileKey(path string) (fileKey, bool) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// Vars returns the kong variables referenced by the command models.
func Vars() kong.Vars {
	return kong.Vars{
		"maxIncludeDepth": strconv.Itoa(lang.DefaultMaxIncludeDepth),
	}
}
