package lang

import (
	"fmt"
	"log/slog"
	"strings"
)

// quote delimits a path key that may contain dots.
const quote = '"'

// ResolvePath splits the left-hand side of an assignment into its keys.
//
// Without quotes every dot separates keys. A key may instead be a
// double-quoted token, whose contents (dots included) form one key; the
// closing quote must be followed by a dot or the end of lhs.
//
// The result always has at least two keys: a section and a target.
func ResolvePath(lhs string) ([]string, error) {
	var (
		keys []string
		err  error
	)

	if strings.IndexByte(lhs, quote) < 0 {
		keys = strings.Split(lhs, ".")
	} else {
		keys, err = splitQuoted(lhs)
		if err != nil {
			return nil, err
		}
	}

	if len(keys) < 2 {
		return nil, ErrPathTooShort.
			Wrap(fmt.Errorf("%q needs a section and a key", lhs)).
			With(slog.String("lhs", lhs))
	}

	return keys, nil
}

// splitQuoted walks lhs one segment at a time.
// Bare segments cannot contain quotes. A trailing dot yields an empty final
// key, left for the caller to reject.
func splitQuoted(lhs string) ([]string, error) {
	if n := strings.Count(lhs, string(quote)); n%2 != 0 {
		return nil, ErrBadQuotes.
			Wrap(fmt.Errorf("odd number of quotes (%d) in %q", n, lhs)).
			With(slog.String("lhs", lhs))
	}

	var keys []string

	rest := lhs
	for {
		if rest == "" || rest[0] != quote {
			end := strings.IndexByte(rest, '.')
			if end < 0 {
				end = len(rest)
			}

			seg := rest[:end]
			if strings.IndexByte(seg, quote) >= 0 {
				return nil, ErrBadQuotes.
					Wrap(fmt.Errorf("quote inside key %q in %q", seg, lhs)).
					With(slog.String("lhs", lhs))
			}

			keys = append(keys, seg)

			if end == len(rest) {
				return keys, nil
			}

			rest = rest[end+1:]

			continue
		}

		// rest[0] is an opening quote; the even count guarantees a closer.
		end := strings.IndexByte(rest[1:], quote) + 1
		keys = append(keys, rest[1:end])
		rest = rest[end+1:]

		switch {
		case rest == "":
			return keys, nil

		case rest[0] != '.':
			return nil, ErrBadQuotes.
				Wrap(fmt.Errorf("expected '.' after quoted key %q in %q",
					keys[len(keys)-1], lhs)).
				With(slog.String("lhs", lhs))
		}

		rest = rest[1:]
	}
}
