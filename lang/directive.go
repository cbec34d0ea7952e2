package lang

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Directive identifies which grammar a source line matched.
type Directive uint8

const (
	DirectiveNone       Directive = iota // none
	DirectiveAssignment                  // assignment
	DirectiveInclude                     // include
	DirectiveListener                    // listener
	DirectiveRoute                       // route
)

// String returns the name of the directive.
func (d Directive) String() string {
	switch d {
	case DirectiveAssignment:
		return "assignment"
	case DirectiveInclude:
		return "include"
	case DirectiveListener:
		return "listener"
	case DirectiveRoute:
		return "route"
	default:
		return "none"
	}
}

// word is the character class of a word character, Unicode aware.
const word = `\p{L}\p{M}\p{N}_`

// grammar pairs a line pattern with the handler applied to its submatches.
type grammar struct {
	kind    Directive
	pattern *regexp.Regexp
	handle  func(ctx context.Context, l *Loader, m []string) error
}

// grammars are tried in order; the first match wins. The table is filled
// by init because handleInclude reaches back into ParseLine.
//
//nolint:gochecknoglobals
var grammars []grammar

//nolint:gochecknoinits
func init() {
	grammars = []grammar{
		{
			kind:    DirectiveAssignment,
			pattern: regexp.MustCompile(`^([` + word + `."]+)\s*=\s*(.*)$`),
			handle:  handleAssignment,
		},
		{
			kind:    DirectiveInclude,
			pattern: regexp.MustCompile(`^include\s+([` + word + `./]+)\s*$`),
			handle:  handleInclude,
		},
		{
			kind:    DirectiveListener,
			pattern: regexp.MustCompile(`^listeners\s+(.*):(\d+)\s+(.*)$`),
			handle:  handleListener,
		},
		{
			kind:    DirectiveRoute,
			pattern: regexp.MustCompile(`^routes\s+([` + word + `]+)\s+(\S+)\s+(\S+)\s*(.*)$`),
			handle:  handleRoute,
		},
	}
}

// Classify reports which directive grammar matches line, without applying
// it. The line must already be trimmed.
func Classify(line string) Directive {
	for _, g := range grammars {
		if g.pattern.MatchString(line) {
			return g.kind
		}
	}

	return DirectiveNone
}

func handleAssignment(ctx context.Context, l *Loader, m []string) error {
	lhs, rhs := m[1], strings.TrimSpace(m[2])

	if lhs != strings.ToLower(lhs) {
		l.log.WarnContext(ctx, "assignment left hand side is not all lower case",
			slog.String("lhs", lhs),
		)
	}

	path, err := ResolvePath(lhs)
	if err != nil {
		return err
	}

	return l.tree.Assign(path, rhs)
}

func handleInclude(ctx context.Context, l *Loader, m []string) error {
	return l.include(ctx, m[1])
}

func handleListener(_ context.Context, l *Loader, m []string) error {
	domains, port := m[1], m[2]

	fields := strings.Fields(m[3])
	if len(fields) != 2 {
		return ErrListenerFormat.
			Wrap(fmt.Errorf("got %d token(s) in %q", len(fields), m[3])).
			With(slog.String("listener", domains+":"+port))
	}

	l.tree.SetListener(domains+":"+port, fields[0], fields[1])

	return nil
}

func handleRoute(_ context.Context, l *Loader, m []string) error {
	matcher := Matcher(strings.ToLower(m[1]))
	processor := strings.ToLower(m[2])
	application := m[3]

	switch matcher {
	case MatchURI:
		uris := strings.Fields(strings.ReplaceAll(m[4], ",", " "))
		if len(uris) == 0 {
			return ErrRouteFormat.
				Wrap(fmt.Errorf("no uri for %s %s", processor, application)).
				With(slog.String("application", application))
		}

		l.tree.AppendRoute(Route{
			Matcher:     MatchURI,
			Processor:   processor,
			Application: application,
			URIs:        uris,
		})

	case MatchDefault:
		// trailing text is ignored
		l.tree.AppendRoute(Route{
			Matcher:     MatchDefault,
			Processor:   processor,
			Application: application,
		})

	default:
		// The message says processor; the offending value is the matcher.
		return ErrUnknownProcessor.
			Wrap(fmt.Errorf("matcher %q", m[1])).
			With(
				slog.String("matcher", m[1]),
				slog.String("processor", processor),
			)
	}

	return nil
}
