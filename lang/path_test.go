package lang

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		lhs  string
		want []string
	}{
		{"two keys", "settings.http", []string{"settings", "http"}},
		{"dotted", "applications.search.type", []string{"applications", "search", "type"}},
		{"dots always split", "a.x.y.z", []string{"a", "x", "y", "z"}},
		{"quoted middle", `a."x.y".z`, []string{"a", "x.y", "z"}},
		{"quoted last", `applications.search."processes.max"`, []string{"applications", "search", "processes.max"}},
		{"quoted first", `"apps".web`, []string{"apps", "web"}},
		{"adjacent quoted", `a."b"."c.d"`, []string{"a", "b", "c.d"}},
		{"bare after quoted", `a."b.c".d.e`, []string{"a", "b.c", "d", "e"}},
		{"empty quoted", `a."".b`, []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.lhs)
			if err != nil {
				t.Fatalf("ResolvePath(%q) error = %v", tt.lhs, err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.lhs, got, tt.want)
			}
		})
	}
}

func TestResolvePath_Errors(t *testing.T) {
	tests := []struct {
		name string
		lhs  string
		want error
	}{
		{"single key", "settings", ErrPathTooShort},
		{"single quoted key", `"a.b"`, ErrPathTooShort},
		{"odd quotes", `a."b.c`, ErrBadQuotes},
		{"three quotes", `a."b"."c`, ErrBadQuotes},
		{"junk after quote", `a."b"c`, ErrBadQuotes},
		{"quote inside bare key", `a.b"c".d`, ErrBadQuotes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePath(tt.lhs)
			if !errors.Is(err, tt.want) {
				t.Errorf("ResolvePath(%q) error = %v, want %v", tt.lhs, err, tt.want)
			}
		})
	}
}

func TestResolvePath_TrailingDot(t *testing.T) {
	got, err := ResolvePath(`a."b".`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(got, []string{"a", "b", ""}) {
		t.Errorf("got %q", got)
	}
}

func FuzzResolvePath_OddQuotes(f *testing.F) {
	f.Add(`a."b`)
	f.Add(`"`)
	f.Add(`a.b.c"`)
	f.Add(`"x.y"."z`)

	f.Fuzz(func(t *testing.T, lhs string) {
		if !utf8.ValidString(lhs) {
			t.Skip("invalid UTF-8")
		}

		_, err := ResolvePath(lhs)

		if strings.Count(lhs, `"`)%2 == 1 && !errors.Is(err, ErrBadQuotes) {
			t.Errorf("ResolvePath(%q) error = %v, want %v", lhs, err, ErrBadQuotes)
		}

		if err == nil {
			keys, _ := ResolvePath(lhs)
			if len(keys) < 2 {
				t.Errorf("ResolvePath(%q) = %q, want at least 2 keys", lhs, keys)
			}
		}
	})
}
