package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// version is set via -ldflags.
var version = "v0.1.0-dev"

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("tensornet %s\n", version)
			return nil
		},
	}
}
