package main

import (
	"context"
	"math/rand/v2"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensornet/internal/backend/gonum"
	"github.com/born-ml/tensornet/internal/tensor"
)

func randomCmd(name, usage string) *cli.Command {
	var (
		shape     []int64
		dtypeName string
		seed      uint64
		low, high float64
		output    string
	)

	flags := []cli.Flag{
		&cli.Int64SliceFlag{
			Name:        "shape",
			Usage:       "dimensions, e.g. --shape 2 --shape 3 or --shape 2,3",
			Destination: &shape,
		},
		&cli.StringFlag{
			Name:        "dtype",
			Usage:       "float32, float64, complex64 or complex128",
			Destination: &dtypeName,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "random seed (default: config file seed, else random)",
			Destination: &seed,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "write the tensor to this file instead of stdout",
			Destination: &output,
		},
	}
	if name == "uniform" {
		flags = append(flags,
			&cli.Float64Flag{Name: "low", Usage: "lower boundary", Value: 0, Destination: &low},
			&cli.Float64Flag{Name: "high", Usage: "upper boundary", Value: 1, Destination: &high},
		)
	}

	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			b, err := openBackend(ctx)
			if err != nil {
				return err
			}
			dtype, err := resolveDType(cmd, dtypeName)
			if err != nil {
				return err
			}
			dims := make(tensor.Shape, len(shape))
			for i, d := range shape {
				dims[i] = int(d)
			}

			switch {
			case cmd.IsSet("seed"):
			case cfg.Seed != nil:
				seed = *cfg.Seed
			default:
				seed = rand.Uint64()
			}
			src := gonum.NewSource(seed)

			var result *tensor.RawTensor
			if name == "uniform" {
				result, err = b.RandomUniform(dims, [2]float64{low, high}, dtype, src)
			} else {
				result, err = b.Randn(dims, dtype, src)
			}
			if err != nil {
				return err
			}
			return writeTensors(output, map[string]*tensor.RawTensor{"result": result})
		},
	}
}
