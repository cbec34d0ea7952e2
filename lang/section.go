package lang

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Section names one top-level region of the configuration tree.
type Section string

const (
	SectionGlobal       Section = "global"
	SectionListeners    Section = "listeners"
	SectionRoutes       Section = "routes"
	SectionApplications Section = "applications"
	SectionSettings     Section = "settings"
	SectionIsolation    Section = "isolation"
	SectionExtras       Section = "extras"
)

// String returns the canonical section name.
func (s Section) String() string { return string(s) }

// sectionOrder is the order sections appear in an assembled document.
//
//nolint:gochecknoglobals
var sectionOrder = []Section{
	SectionListeners,
	SectionRoutes,
	SectionApplications,
	SectionSettings,
	SectionIsolation,
	SectionExtras,
}

// sectionName maps every accepted spelling to its canonical section.
//
//nolint:gochecknoglobals
var sectionName = map[string]Section{
	"global":       SectionGlobal,
	"listeners":    SectionListeners,
	"routes":       SectionRoutes,
	"applications": SectionApplications,
	"apps":         SectionApplications,
	"settings":     SectionSettings,
	"isolation":    SectionIsolation,
	"extras":       SectionExtras,
}

// Sections returns the output sections in document order.
func Sections() []Section {
	return append([]Section(nil), sectionOrder...)
}

// LookupSection returns the canonical section for name, ignoring case.
// "apps" is an alias of "applications".
//
// An unknown name yields [ErrUnknownSection], naming the closest known
// section when one matches.
func LookupSection(name string) (Section, error) {
	key := strings.ToLower(name)
	if s, ok := sectionName[key]; ok {
		return s, nil
	}

	err := ErrUnknownSection.With(slog.String("group", name))

	if hint := suggestSection(key); hint != "" {
		return "", err.
			Wrap(fmt.Errorf("%q (did you mean %q?)", name, hint)).
			With(slog.String("suggest", hint))
	}

	return "", err.Wrap(fmt.Errorf("%q", name))
}

// suggestSection returns the best fuzzy match for key among the section
// spellings, or "" when nothing matches.
func suggestSection(key string) string {
	if key == "" {
		return ""
	}

	names := make([]string, 0, len(sectionName))
	for _, s := range sectionOrder {
		names = append(names, string(s))
	}

	names = append(names, string(SectionGlobal), "apps")

	matches := fuzzy.Find(key, names)
	if len(matches) == 0 {
		return ""
	}

	return string(sectionName[matches[0].Str])
}
