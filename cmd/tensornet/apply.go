package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensornet/internal/tensor"
)

func applyCmd() *cli.Command {
	var input, output string

	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply a matrix function: inv, expm, eigh, norm or trace",
		ArgsUsage: "inv|expm|eigh|norm|trace",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "tensor JSON file (- for stdin)",
				Value:       "-",
				Destination: &input,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "write results to this file instead of stdout",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			b, err := openBackend(ctx)
			if err != nil {
				return err
			}
			t, err := readTensor(input)
			if err != nil {
				return err
			}

			var fn func(*tensor.RawTensor) (*tensor.RawTensor, error)
			switch op := cmd.Args().First(); op {
			case "inv":
				fn = b.Inv
			case "expm":
				fn = b.Expm
			case "norm":
				fn = b.Norm
			case "trace":
				fn = b.Trace
			case "eigh":
				values, vectors, err := b.Eigh(t)
				if err != nil {
					return err
				}
				return writeTensors(output, map[string]*tensor.RawTensor{"values": values, "vectors": vectors})
			default:
				return fmt.Errorf("unknown function %q", op)
			}

			result, err := fn(t)
			if err != nil {
				return err
			}
			return writeTensors(output, map[string]*tensor.RawTensor{"result": result})
		},
	}
}
