package cli

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/smartscript/cli/cmd"
	"github.com/ardnew/smartscript/pkg"
)

// CLI is the top-level command-line interface for smartscript.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Exec  cmd.Exec  `cmd:"" default:"withargs" help:"Execute template documents (default)."`
	Fmt   cmd.Fmt   `cmd:""                    help:"Format a template document."`
	Check cmd.Check `cmd:""                    help:"Parse template documents without executing them."`
	Repl  cmd.Repl  `cmd:""                    help:"Execute template lines interactively."`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file."`
}

// Run executes the smartscript CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, configPath(configFile), exit, args)
}

func run(
	ctx context.Context,
	configFilePath string,
	exit func(code int),
	args []string,
	options ...kong.Option,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cachePath(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply log flags before kong parses anything, so that errors reported
	// while parsing already use them.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		append([]kong.Option{
			kong.Name(pkg.Name),
			kong.Description(pkg.Description),
			kong.UsageOnError(),
			kong.Exit(exit),
			kong.ExplicitGroups(
				[]kong.Group{cli.Log.group(), cli.Pprof.group()},
			),
			kong.BindSingletonProvider(func() context.Context {
				return ctx
			}),
			kong.ConfigureHelp(
				kong.HelpOptions{
					Compact:             true,
					Summary:             true,
					Tree:                true,
					NoExpandSubcommands: true,
				}),
			kong.Configuration(loadConfig, configFilePath),
			vars,
		}, options...)...,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode was selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

func joinSeq(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}
