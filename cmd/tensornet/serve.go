package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensornet/internal/config"
	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/server"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve backend operations over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8090",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "limit for reading a whole request, headers included",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			if !cmd.IsSet("addr") {
				addr = cfg.Server.Address
			}
			if !cmd.IsSet("read-timeout") && cfg.Server.ReadTimeout != nil {
				readTimeout = *cfg.Server.ReadTimeout
			}

			b, err := openBackend(ctx)
			if err != nil {
				return err
			}
			opts, err := serverOptions(cfg)
			if err != nil {
				return err
			}

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.New(b, log, opts...).Register(e)

			log.Info("starting server", "address", addr, "backend", b.Name())
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: readTimeouts(readTimeout),
			}
			return sc.Start(ctx, e)
		},
	}
}

// serverOptions carries the config file's random defaults to the API.
func serverOptions(c config.Config) ([]server.Option, error) {
	dtype, err := c.DataType()
	if err != nil {
		return nil, err
	}
	opts := []server.Option{server.WithDefaultDType(dtype)}
	if c.Seed != nil {
		opts = append(opts, server.WithDefaultSeed(*c.Seed))
	}
	return opts, nil
}

// readTimeouts bounds reading a whole request, headers included.
func readTimeouts(d time.Duration) func(*http.Server) error {
	return func(srv *http.Server) error {
		srv.ReadTimeout = d
		srv.ReadHeaderTimeout = d
		return nil
	}
}
