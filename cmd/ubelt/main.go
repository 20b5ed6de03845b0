package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ubelt/config"
	"ubelt/misc"
	"ubelt/state"
	"ubelt/units"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if data, err := config.Dump(env.Cfg); err == nil {
			name := "actual.yaml"
			if len(configFile) > 0 {
				name = filepath.Base(configFile)
			}
			env.Rpt.StoreData("config/"+name, data)
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if er := env.Rpt.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Errors from subcommands are regular errors, cli.Exit() is not used.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

// contextFlags returns flags overriding configured conversion context.
func contextFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{Name: "base", Aliases: []string{"b"}, Usage: "base font `SIZE` in px em and rem are resolved against"},
		&cli.FloatFlag{Name: "vw", Usage: "viewport `WIDTH` in px"},
		&cli.FloatFlag{Name: "vh", Usage: "viewport `HEIGHT` in px"},
		&cli.IntFlag{Name: "precision", Aliases: []string{"p"}, Usage: "number of decimal `DIGITS` to display"},
	}
}

func newApp() *cli.Command {
	unitNames := strings.Join(units.UnitNames(), ", ")

	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "developer utility belt: CSS length conversion and WCAG color contrast",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "units",
				Usage:        "Converts CSS lengths between units",
				OnUsageError: usageErrorHandler,
				Commands: []*cli.Command{
					{
						Name:         "convert",
						Usage:        "Converts single value",
						OnUsageError: usageErrorHandler,
						Action:       runUnitsConvert,
						Flags:        contextFlags(),
						ArgsUsage:    "VALUE FROM TO | LENGTH TO",
						CustomHelpTemplate: fmt.Sprintf(`%s
VALUE, LENGTH:
    number or CSS length, e.g. "16" or "16px"; unitless length is px
    negative values must follow "--", e.g. "-- -8px rem"

FROM, TO:
    one of %s
    percent (also "%%") is recognized but cannot be converted
`, cli.CommandHelpTemplate, unitNames),
					},
					{
						Name:         "table",
						Usage:        "Shows value in every supported unit",
						OnUsageError: usageErrorHandler,
						Action:       runUnitsTable,
						Flags:        contextFlags(),
						ArgsUsage:    "VALUE [FROM] | LENGTH",
					},
					{
						Name:         "rewrite",
						Usage:        "Rewrites every length in stylesheet from one unit into another",
						OnUsageError: usageErrorHandler,
						Action:       runUnitsRewrite,
						Flags: append(contextFlags(),
							&cli.StringFlag{Name: "from", Value: units.UnitPx.String(), Usage: "source `UNIT`"},
							&cli.StringFlag{Name: "to", Value: units.UnitRem.String(), Usage: "target `UNIT`"},
							&cli.StringFlag{Name: "charset", Usage: "decode stylesheet from `ENCODING` (see IANA.org for character set names)"},
						),
						ArgsUsage: "SOURCE [DESTINATION]",
						CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to stylesheet

DESTINATION:
    path to write rewritten stylesheet to, if absent - STDOUT
`, cli.CommandHelpTemplate),
					},
				},
			},
			{
				Name:         "contrast",
				Usage:        "Computes WCAG contrast ratio of two colors",
				OnUsageError: usageErrorHandler,
				Action:       runContrast,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "suggest", Aliases: []string{"s"}, Usage: "also suggest black or white text for the background"},
				},
				ArgsUsage: "[FOREGROUND [BACKGROUND]]",
				CustomHelpTemplate: fmt.Sprintf(`%s
FOREGROUND, BACKGROUND:
    "#rgb", "#rrggbb", "rgb(r, g, b)" or "r,g,b"
    absent colors are taken from configuration

Thresholds are for normal text: AA 4.5:1, AAA 7:1.
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	// allow graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err  error
		data []byte
		kind string
	)

	out := env.Out
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}

	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		kind = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Debug("Outputing configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
