// Package cmd implements the unitgen subcommands: gen, check and init.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file read at startup and written by init.
	ConfigIdentifier = "config"
)
