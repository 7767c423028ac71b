package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	styleprops "github.com/goliatone/go-styleprops"
)

var labelCmd = &cli.Command{
	Name:      "label",
	Usage:     "Resolve the display label of one option",
	ArgsUsage: "<property-id> <option-id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "explain",
			Usage: "Print how the label was resolved as JSON",
		},
		&cli.BoolFlag{
			Name:  "no-locale",
			Usage: "Skip translations and use the catalog labels",
		},
	},
	Action: labelAction,
}

func labelAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("property id and option id required")
	}
	env, err := loadEnvironment(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	sp, err := env.selectProperty(cmd.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	id := optionID(sp, cmd.Args().Get(1))
	resolution := sp.ResolveLabel(id, styleprops.WithLocale(!cmd.Bool("no-locale")))
	if !cmd.Bool("explain") {
		fmt.Fprintln(cmd.Root().Writer, resolution.Label)
		return nil
	}
	data, err := resolution.ToJSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, string(data))
	return nil
}
