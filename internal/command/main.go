package command

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/go-x/slogx"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/command/common"
	"github.com/rpattn/hbnb/internal/config"
)

// Version is set at build time with -ldflags.
var Version = "dev"

func Main(name string, usage string, commands ...*cli.Command) {
	app := NewApp(name, usage, afero.NewOsFs(), commands...)
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// NewApp builds the cli application. Every file the commands touch goes
// through fs.
func NewApp(name string, usage string, fs afero.Fs, commands ...*cli.Command) *cli.App {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  Version,
		Metadata: map[string]any{
			common.MetadataFs: fs,
		},
		Before: func(ctx *cli.Context) error {
			conf, err := config.Load(fs, ctx.String(common.FlagConfig))
			if err != nil {
				return err
			}

			if ctx.IsSet(common.FlagFormat) {
				conf.Output.Format = ctx.String(common.FlagFormat)
			}
			if ctx.IsSet(common.FlagLogLevel) {
				conf.Log.Level = ctx.String(common.FlagLogLevel)
			}

			slogLevel := slog.LevelWarn

			switch conf.Log.Level {
			case "debug":
				slogLevel = slog.LevelDebug
			case "info":
				slogLevel = slog.LevelInfo
			case "warn":
				slogLevel = slog.LevelWarn
			case "error":
				slogLevel = slog.LevelError
			}

			logger := slog.New(slogx.ContextHandler{
				Handler: slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{
					Level:     slogLevel,
					AddSource: ctx.Bool(common.FlagDebug),
				}),
			})

			slog.SetDefault(logger)

			ctx.App.Metadata[common.MetadataConfig] = conf

			slog.DebugContext(ctx.Context, "using configuration", slog.Any("config", conf))

			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    common.FlagConfig,
				EnvVars: []string{"HBNB_CONFIG"},
				Aliases: []string{"c"},
				Usage:   "configuration file or directory holding config.yaml",
			},
			&cli.BoolFlag{
				Name:    common.FlagDebug,
				Value:   false,
				EnvVars: []string{"HBNB_DEBUG"},
				Usage:   "Toggle debug mode",
			},
			&cli.StringFlag{
				Name:  common.FlagLogLevel,
				Usage: "Set logging level (debug, info, warn, error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  common.FlagFormat,
				Usage: "Document format used for stdin/stdout (json, yaml)",
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		debug := ctx.Bool(common.FlagDebug)

		if !debug {
			slog.ErrorContext(ctx.Context, err.Error())
		} else {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		}
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	return app
}
