package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensornet/internal/backend/gonum"
	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/registry"
)

func backendsCmd() *cli.Command {
	return &cli.Command{
		Name:  "backends",
		Usage: "List available backends",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			for _, name := range registry.Names() {
				b, err := registry.New(name, log)
				if err != nil {
					fmt.Printf("%-8s unavailable: %v\n", name, err)
					continue
				}
				if d, ok := b.(interface{ Info() gonum.Info }); ok {
					info := d.Info()
					simd := "none"
					if len(info.SIMD) > 0 {
						simd = strings.Join(info.SIMD, ",")
					}
					fmt.Printf("%-8s arch=%s simd=%s\n", name, info.Arch, simd)
					continue
				}
				fmt.Println(name)
			}
			return nil
		},
	}
}
