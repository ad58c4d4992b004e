package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/tensor"
)

func decomposeCmd() *cli.Command {
	var (
		input     string
		output    string
		splitAxis int64
		maxKeep   int64
		maxErr    float64
		relative  bool
	)

	return &cli.Command{
		Name:      "decompose",
		Usage:     "Split a tensor with svd, qr or rq",
		ArgsUsage: "svd|qr|rq",
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
			&cli.Int64Flag{
				Name:        "split-axis",
				Usage:       "axis separating left and right indices",
				Required:    true,
				Destination: &splitAxis,
			},
			&cli.Int64Flag{
				Name:        "max-singular-values",
				Usage:       "keep at most this many singular values (svd)",
				Destination: &maxKeep,
			},
			&cli.Float64Flag{
				Name:        "max-truncation-error",
				Usage:       "bound on the norm of discarded singular values (svd)",
				Destination: &maxErr,
			},
			&cli.BoolFlag{
				Name:        "relative",
				Usage:       "scale max-truncation-error by the largest singular value (svd)",
				Destination: &relative,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			method := cmd.Args().First()
			b, err := openBackend(ctx)
			if err != nil {
				return err
			}
			t, err := readTensor(input)
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Debug("decomposing", "method", method, "shape", t.Shape(), "split_axis", splitAxis)

			var results map[string]*tensor.RawTensor
			switch method {
			case "svd":
				opts := tensor.TruncationOptions{
					MaxSingularValues: int(maxKeep),
					Relative:          relative,
				}
				if cmd.IsSet("max-truncation-error") {
					opts.MaxTruncationError = &maxErr
				}
				u, s, vh, rest, err := b.SVDDecomposition(t, int(splitAxis), opts)
				if err != nil {
					return err
				}
				results = map[string]*tensor.RawTensor{"u": u, "s": s, "vh": vh, "s_rest": rest}
			case "qr":
				q, r, err := b.QRDecomposition(t, int(splitAxis))
				if err != nil {
					return err
				}
				results = map[string]*tensor.RawTensor{"q": q, "r": r}
			case "rq":
				r, q, err := b.RQDecomposition(t, int(splitAxis))
				if err != nil {
					return err
				}
				results = map[string]*tensor.RawTensor{"r": r, "q": q}
			default:
				return fmt.Errorf("unknown decomposition %q (want svd, qr or rq)", method)
			}
			return writeTensors(output, results)
		},
	}
}
