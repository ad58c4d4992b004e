// Package main provides the tensornet CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:   "tensornet",
		Usage:  "Tensor network backend operations",
		Flags:  globalFlags(),
		Before: setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			versionCmd(),
			backendsCmd(),
			decomposeCmd(),
			applyCmd(),
			randomCmd("randn", "Draw a tensor from the standard normal distribution"),
			randomCmd("uniform", "Draw a tensor uniformly from [low, high)"),
			serveCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
