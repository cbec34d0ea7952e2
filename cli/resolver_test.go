package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func flagNamed(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve(t *testing.T) {
	doc := `
log-level: debug
log_format: json
max-include-depth: 8
force: true
inputs: [a.unit, b.unit, 3]
`

	r, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"max-include-depth", "8"},
		{"force", true},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, flagNamed(tt.flag))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}

	got, _ := r.Resolve(nil, nil, flagNamed("inputs"))

	list, ok := got.([]string)
	if !ok || !slices.Equal(list, []string{"a.unit", "b.unit", "3"}) {
		t.Errorf("Resolve(inputs) = %#v", got)
	}

	if err := r.Validate(nil); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestResolve_Malformed(t *testing.T) {
	for _, doc := range []string{"", "- just\n- a list\n", "key: [unclosed\n"} {
		r, err := resolve(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("resolve(%q) error = %v", doc, err)
		}

		got, err := r.Resolve(nil, nil, flagNamed("key"))
		if got != nil || err != nil {
			t.Errorf("resolve(%q).Resolve() = %v, %v; want nil, nil", doc, got, err)
		}
	}
}
