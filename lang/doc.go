// Package lang parses the unitgen directive language and assembles NGINX
// Unit configuration documents from it.
//
// # Language
//
// Sources are read line by line. Surrounding whitespace is trimmed, and blank
// lines and lines starting with '#' or ';' are ignored. Every other line is
// one directive, matched against these grammars in order:
//
//	<path> = <value>
//	include <file>
//	listeners <domains>:<port> <action> <target>
//	routes match_uri <processor> <application> <uri>[,<uri>...]
//	routes default <processor> <application>
//
// A path is a dot-separated list of keys whose first key names a section
// (global, listeners, applications or its alias apps, settings, isolation,
// extras). A key may be double-quoted to include dots:
//
//	applications.search.type = python3.8
//	applications.search."processes.max" = 3
//	global.applications.user = nobody
//
// # Loading
//
// A [Loader] owns one [Tree]. Format errors (bad quoting, unknown sections,
// malformed listeners or routes) and I/O errors abort the load. Lines that
// match no grammar are collected as [Rejection] values and reported together
// through [ErrUnrecognized] once the whole source has been read.
//
//	l := lang.NewLoader(lang.WithDebug(true))
//	err := l.Load(ctx, "unit.conf")
//
// # Output
//
// [Assemble] merges the global defaults of each section into its entries and
// orders the result; [Save] writes it as JSON or YAML, keeping the previous
// file as a "~" backup.
//
//	doc, err := lang.Assemble(l.Tree())
//	err = lang.Save(ctx, "unit.json", doc, lang.FormatJSON)
package lang
