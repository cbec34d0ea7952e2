package lang

import (
	"bytes"

	"github.com/goccy/go-yaml"
)

// Matcher selects how a route decides whether it applies to a request.
type Matcher string

const (
	// MatchURI routes requests whose URI matches one of the route's patterns.
	MatchURI Matcher = "match_uri"
	// MatchDefault always applies; it is the fallback route.
	MatchDefault Matcher = "default"
)

// Route is one entry of the ordered routes section.
type Route struct {
	Matcher     Matcher
	Processor   string // action key, e.g. "pass"
	Application string // action target, e.g. "applications/search"
	URIs        []string
}

// action returns the single-entry {processor: application} mapping.
func (r Route) action() *Mapping {
	m := NewMapping()
	m.SetScalar(r.Processor, r.Application)

	return m
}

// MarshalJSON implements json.Marshaler.
//
// A [MatchURI] route encodes as {"match": {"uri": [...], "action": {...}}};
// a [MatchDefault] route as {"action": {...}}.
func (r Route) MarshalJSON() ([]byte, error) {
	action, err := r.action().MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	if r.Matcher != MatchURI {
		buf.WriteString(`{"action":`)
		buf.Write(action)
		buf.WriteByte('}')

		return buf.Bytes(), nil
	}

	buf.WriteString(`{"match":{"uri":[`)

	for i, u := range r.URIs {
		if i > 0 {
			buf.WriteByte(',')
		}

		b, err := marshalString(u)
		if err != nil {
			return nil, err
		}

		buf.Write(b)
	}

	buf.WriteString(`],"action":`)
	buf.Write(action)
	buf.WriteString(`}}`)

	return buf.Bytes(), nil
}

func (r Route) yamlValue() any {
	action := yaml.MapItem{Key: "action", Value: r.action().yamlValue()}

	if r.Matcher != MatchURI {
		return yaml.MapSlice{action}
	}

	return yaml.MapSlice{{
		Key: "match",
		Value: yaml.MapSlice{
			{Key: "uri", Value: append([]string{}, r.URIs...)},
			action,
		},
	}}
}
