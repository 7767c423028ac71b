package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-styleprops/catalog"
)

var validateCmd = &cli.Command{
	Name:      "validate",
	Usage:     "Report select options that lookups can never reach",
	ArgsUsage: "[catalog-file]",
	Action:    validateAction,
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().Get(0)
	if path == "" {
		path = cmd.Root().String("catalog")
	}

	var (
		props *catalog.Catalog
		err   error
	)
	if path == "" {
		path = "builtin"
		props, err = catalog.Builtin(catalog.WithLogger(slog.Default()))
	} else {
		props, err = catalog.Load(path, catalog.WithLogger(slog.Default()))
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load catalog: %v", err), 1)
	}

	out := cmd.Root().Writer
	issues := props.Audit()
	for _, issue := range issues {
		fmt.Fprintln(out, issue)
	}
	if len(issues) > 0 {
		return cli.Exit(fmt.Sprintf("catalog %s has %d issue(s)", path, len(issues)), 1)
	}
	fmt.Fprintf(out, "Catalog %s is valid (%d properties)\n", path, props.Len())
	return nil
}
