package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-styleprops/catalog"
	"github.com/goliatone/go-styleprops/i18n"
	"github.com/goliatone/go-styleprops/internal/config"
	"github.com/goliatone/go-styleprops/internal/logging"
)

// newApp builds the command tree. Flag defaults come from cfg so the
// environment and .env files apply unless a flag is given.
func newApp(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:    "styleprops",
		Version: Version,
		Usage:   "Inspect style property catalogs and option labels",
		Writer:  os.Stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Catalog file (YAML, JSON or TOML) merged over the builtin properties",
				Aliases: []string{"c"},
				Value:   cfg.Catalog,
			},
			&cli.StringFlag{
				Name:    "locale",
				Usage:   "Locale used to translate option labels",
				Aliases: []string{"l"},
				Value:   cfg.Locale,
			},
			&cli.StringFlag{
				Name:  "locale-fallback",
				Usage: "Locale used when a message is missing in --locale",
				Value: cfg.LocaleFallback,
			},
			&cli.StringFlag{
				Name:  "messages",
				Usage: "Messages file keyed by locale merged over the builtin messages",
				Value: cfg.Messages,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
				Value: cfg.LogLevel,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetupLogger(cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			optionsCmd,
			labelCmd,
			validateCmd,
			{
				Name:  "version",
				Usage: "Print the version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "styleprops version %s\n", cmd.Root().Version)
					return nil
				},
			},
		},
	}
}

// environment is what every command works against: the merged catalog and
// the message catalog for the selected locale.
type environment struct {
	catalog  *catalog.Catalog
	messages *i18n.Catalog
	logger   *slog.Logger
}

func loadEnvironment(cmd *cli.Command) (*environment, error) {
	root := cmd.Root()
	logger := slog.Default()

	props, err := catalog.Builtin(catalog.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if path := root.String("catalog"); path != "" {
		extra, err := catalog.Load(path, catalog.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		props = props.Merge(extra)
	}

	messages, err := i18n.Builtin(i18n.Config{
		Locale:         root.String("locale"),
		LocaleFallback: root.String("locale-fallback"),
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	if path := root.String("messages"); path != "" {
		if err := messages.LoadFile(path); err != nil {
			return nil, err
		}
	}

	logger.Debug("environment ready",
		"properties", props.Len(),
		"locale", messages.Locale(),
		"locales", messages.Locales(),
	)
	return &environment{catalog: props, messages: messages, logger: logger}, nil
}
