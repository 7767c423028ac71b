package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-styleprops/internal/config"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := newApp(cfg)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
