package lang

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/goccy/go-yaml"
)

// value is anything that can appear at the root of a [Document].
type value interface {
	json.Marshaler
	yamlValue() any
}

// routeList encodes as a sequence, empty rather than null.
type routeList []Route

// MarshalJSON implements json.Marshaler.
func (rl routeList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, r := range rl {
		if i > 0 {
			buf.WriteByte(',')
		}

		b, err := r.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(b)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

func (rl routeList) yamlValue() any {
	s := make([]any, 0, len(rl))
	for _, r := range rl {
		s = append(s, r.yamlValue())
	}

	return s
}

type entry struct {
	key   string
	value value
}

// Document is the assembled output: an ordered set of root keys.
type Document struct {
	entries []entry
}

// Assemble builds the output document from t.
//
// Sections are emitted in the order listeners, routes, applications,
// settings, isolation, extras. Routes are always present. Other sections
// are omitted when they declare no entries; otherwise each is the shallow
// merge of its global defaults overridden by its own entries. For
// applications the merge applies per application, in sorted name order.
// Extras entries are placed directly at the root.
//
// Assemble does not modify t, so assembling the same tree twice yields
// identical documents.
func Assemble(t *Tree) (*Document, error) {
	doc := &Document{}

	for _, s := range sectionOrder {
		switch s {
		case SectionRoutes:
			doc.set(string(s), routeList(t.Routes()))

		case SectionExtras:
			for k, n := range t.Section(s).All() {
				doc.set(k, n.clone())
			}

		case SectionApplications:
			apps := t.Section(s)
			if apps.Len() == 0 {
				continue
			}

			defaults := t.Defaults(s)
			out := NewMapping()

			for _, name := range slices.Sorted(slices.Values(apps.Keys())) {
				n, _ := apps.Get(name)

				own, ok := n.Mapping()
				if !ok {
					return nil, ErrNotMapping.
						Wrap(fmt.Errorf("application %q is a %s", name, n.Kind())).
						With(slog.String("application", name))
				}

				out.Set(name, Nested(defaults.Merge(own)))
			}

			doc.set(string(s), out)

		default:
			own := t.Section(s)
			if own.Len() == 0 {
				continue
			}

			doc.set(string(s), t.Defaults(s).Merge(own))
		}
	}

	return doc, nil
}

// set stores v under key, keeping the position of an existing key.
func (d *Document) set(key string, v value) {
	for i := range d.entries {
		if d.entries[i].key == key {
			d.entries[i].value = v

			return
		}
	}

	d.entries = append(d.entries, entry{key: key, value: v})
}

// Keys returns the root keys of d in output order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}

	return keys
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, e := range d.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalString(e.key)
		if err != nil {
			return nil, err
		}

		val, err := e.value.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (d *Document) yamlValue() yaml.MapSlice {
	s := make(yaml.MapSlice, 0, len(d.entries))
	for _, e := range d.entries {
		s = append(s, yaml.MapItem{Key: e.key, Value: e.value.yamlValue()})
	}

	return s
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(s)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
