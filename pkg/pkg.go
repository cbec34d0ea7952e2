//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the raw content of the embedded VERSION file.
//
//go:embed VERSION
var version string

// Version is the semantic version of the unitgen module embedded at build
// time, with surrounding whitespace removed.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "unitgen"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Generate NGINX Unit configuration documents from a terse line-oriented DSL"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
