package lang

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Tree is the in-memory configuration document built by a [Loader].
//
// Every section except routes is a [Mapping]; routes is an ordered slice.
// The global section maps each output section name to the defaults merged
// into that section when the document is assembled.
type Tree struct {
	sections map[Section]*Mapping
	routes   []Route
}

// NewTree returns an empty tree with every section allocated.
func NewTree() *Tree {
	t := &Tree{sections: make(map[Section]*Mapping, len(sectionOrder)+1)}

	t.sections[SectionGlobal] = NewMapping()

	for _, s := range sectionOrder {
		if s == SectionRoutes {
			continue
		}

		t.sections[s] = NewMapping()
	}

	// Every output section, routes included, has a defaults entry.
	for _, s := range sectionOrder {
		t.sections[SectionGlobal].Ensure(string(s))
	}

	return t
}

// Section returns the mapping backing s, or nil for [SectionRoutes] and
// unknown sections.
func (t *Tree) Section(s Section) *Mapping {
	return t.sections[s]
}

// Defaults returns the global defaults for section s, or nil if none were
// ever declared.
func (t *Tree) Defaults(s Section) *Mapping {
	n, ok := t.sections[SectionGlobal].Get(string(s))
	if !ok {
		return nil
	}

	m, _ := n.Mapping()

	return m
}

// Routes returns the route records in declaration order.
func (t *Tree) Routes() []Route {
	return slices.Clone(t.routes)
}

// Assign stores value at path, where path[0] names a section and the
// remaining keys descend through nested mappings, creating them as needed.
// The final key receives value verbatim.
func (t *Tree) Assign(path []string, value string) error {
	if len(path) < 2 {
		return ErrPathTooShort.
			Wrap(fmt.Errorf("%q needs a section and a key", strings.Join(path, "."))).
			With(slog.Any("path", path))
	}

	section, err := LookupSection(path[0])
	if err != nil {
		return err
	}

	if section == SectionRoutes {
		return ErrRoutesAssignment.
			Wrap(fmt.Errorf("use a routes directive instead of %q",
				strings.Join(path, "."))).
			With(slog.Any("path", path))
	}

	if i := slices.Index(path, ""); i >= 0 {
		return ErrEmptyKey.
			Wrap(fmt.Errorf("key %d of %q", i, strings.Join(path, "."))).
			With(slog.Any("path", path))
	}

	m := t.sections[section]
	for _, key := range path[1 : len(path)-1] {
		m = m.Ensure(key)
	}

	m.SetScalar(path[len(path)-1], value)

	return nil
}

// SetListener stores {action: target} under key in the listeners section,
// replacing any listener previously declared with the same key.
func (t *Tree) SetListener(key, action, target string) {
	m := NewMapping()
	m.SetScalar(action, target)
	t.sections[SectionListeners].Set(key, Nested(m))
}

// AppendRoute adds r after all previously declared routes.
func (t *Tree) AppendRoute(r Route) {
	t.routes = append(t.routes, r)
}
