package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/unitgen/cli/cmd"
	"github.com/ardnew/unitgen/pkg"
)

// CLI is the top-level command-line interface for unitgen.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Init  cmd.Init  `cmd:"" help:"Write a configuration file holding the current flag values"`
	Check cmd.Check `cmd:"" help:"Report unrecognized or malformed directives without writing output"`

	Gen cmd.Gen `cmd:"" default:"withargs" help:"Generate a Unit configuration document"`
}

// Run executes the unitgen CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cmd.Vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags, including a command's --debug, so they apply
	// regardless of position on the command line.
	cli.Log.scan(args)

	parser, err := newParser(&cli, exit, vars,
		// The provider runs when a command is invoked, after ctx below
		// has been extended with the kong context.
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx, cli.Gen.Debug || cli.Check.Debug)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}

// newParser builds the kong parser for cli. Extra options follow the
// defaults; callers bind the context.Context passed to commands.
func newParser(
	cli *CLI,
	exit func(code int),
	vars kong.Vars,
	opts ...kong.Option,
) (*kong.Kong, error) {
	return kong.New(cli,
		append([]kong.Option{
			kong.Name(pkg.Name),
			kong.Description(pkg.Description),
			kong.UsageOnError(),
			kong.Exit(exit),
			kong.ExplicitGroups(
				[]kong.Group{cli.Log.group(), cli.Pprof.group()},
			),
			kong.ConfigureHelp(
				kong.HelpOptions{
					Compact:             true,
					Summary:             true,
					Tree:                true,
					FlagsLast:           false,
					NoAppSummary:        false,
					NoExpandSubcommands: true,
				}),
			vars,
		}, opts...)...,
	)
}
