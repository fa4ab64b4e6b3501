package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lox/cli/cmd"
	"github.com/ardnew/lox/log"
	"github.com/ardnew/lox/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// defaultMaxDepth bounds the call depth of a script.
const defaultMaxDepth = 1024

// CLI is the top-level command-line interface for lox.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version  kong.VersionFlag `help:"Print version and exit."`
	Define   []string         `help:"Define a global NAME=EXPR before the script runs." placeholder:"NAME=EXPR" sep:"none" short:"D"`
	Include  []string         `help:"Add a directory to the script search path."       placeholder:"DIR"       short:"I"  type:"path"`
	MaxDepth int              `default:"${maxDepth}"                                   help:"Maximum call depth."`
	CacheDir string           `default:"${cache}"                                      help:"Directory for history and profiles." type:"path"`

	Run    cmd.Run    `cmd:"" default:"withargs" help:"Run a script, or start the prompt without one."`
	Repl   cmd.Repl   `cmd:""                   help:"Start the interactive prompt."`
	Tokens cmd.Tokens `cmd:""                   help:"Print the tokens of a script."`
	AST    cmd.AST    `cmd:""                   help:"Print the syntax tree of a script." name:"ast"`
}

// Run parses args and executes the selected command. The exit function is
// called by flags such as --help and --version that end the process early.
//
// Usage errors are returned as a [*cmd.ExitError] with [cmd.ExitUsage].
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.CacheIdentifier: pkg.CacheDir(),
		"maxDepth":          strconv.Itoa(defaultMaxDepth),
		"version":           pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
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
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(baseConfig+".json")),
		kong.Configuration(loadYAML, pkg.ConfigPath(baseConfig+".yaml")),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			_ = perr.Context.PrintUsage(true)
		}

		return cmd.Exit(cmd.ExitUsage, err)
	}

	cli.Log.start(ctx)

	// no-op unless built with the pprof tag and --pprof-mode is set
	defer cli.Pprof.start(ctx)()

	ctx = cmd.WithSettings(ctx, cmd.Settings{
		Defines:  cli.Define,
		Include:  cli.Include,
		MaxDepth: cli.MaxDepth,
		CacheDir: cli.CacheDir,
		Logger:   log.Default(),
	})

	return ktx.Run()
}
