package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	styleprops "github.com/goliatone/go-styleprops"
)

var optionsCmd = &cli.Command{
	Name:      "options",
	Usage:     "List the options of a select property with their labels",
	ArgsUsage: "<property-id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-locale",
			Usage: "Skip translations and use the catalog labels",
		},
	},
	Action: optionsAction,
}

func optionsAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("property id required")
	}
	env, err := loadEnvironment(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	sp, err := env.selectProperty(cmd.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	locale := styleprops.WithLocale(!cmd.Bool("no-locale"))
	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	for _, option := range sp.Options() {
		id, ok := option.Identity()
		if !ok {
			fmt.Fprintf(w, "-\t(no id)\n")
			continue
		}
		marker := ""
		if current, found := sp.CurrentOption(); found && current.Matches(id) {
			marker = "*"
		}
		fmt.Fprintf(w, "%v\t%s\t%s\n", id, sp.OptionLabel(id, locale), marker)
	}
	return w.Flush()
}

func (env *environment) selectProperty(id string) (*styleprops.SelectProperty, error) {
	sp, err := env.catalog.Select(id,
		styleprops.WithTranslator(env.messages),
		styleprops.WithLogger(env.logger),
	)
	if err != nil {
		return nil, err
	}
	// Mark the default as the current value so listings show it.
	if def := sp.Default(); def != nil && def != "" {
		sp.Set(styleprops.AttrValue, def, styleprops.Silent)
	}
	return sp, nil
}

// optionID maps a command line argument onto an option identity, trying the
// raw string first and then a number for catalogs with numeric ids.
func optionID(sp *styleprops.SelectProperty, raw string) any {
	if _, ok := sp.Option(raw); ok {
		return raw
	}
	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		if _, ok := sp.Option(number); ok {
			return number
		}
	}
	return raw
}
