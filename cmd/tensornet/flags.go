package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensornet/internal/config"
	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/registry"
	"github.com/born-ml/tensornet/internal/tensor"
)

var (
	configPath string
	backend    string
	logLevel   string
	logFormat  string
	cfg        config.Config
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       config.Path(),
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "backend",
			Aliases:     []string{"b"},
			Usage:       "numerical backend",
			Value:       config.DefaultBackend,
			Destination: &backend,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       config.DefaultLogLevel,
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       config.DefaultLogFormat,
			Destination: &logFormat,
		},
	}
}

// setup loads the config file, lets explicit flags override it, and
// installs the logger on the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loaded, err := config.Load(configPath)
	if err != nil {
		return ctx, err
	}
	cfg = loaded
	if !cmd.IsSet("backend") {
		backend = cfg.Backend
	}
	if !cmd.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if !cmd.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}

	var log logger.Logger
	switch logFormat {
	case "json":
		log = logger.JSON(os.Stderr, logger.ParseLevel(logLevel))
	case "text":
		log = logger.Text(os.Stderr, logger.ParseLevel(logLevel))
	default:
		return ctx, fmt.Errorf("unknown log format %q", logFormat)
	}
	return logger.WithContext(ctx, log), nil
}

func openBackend(ctx context.Context) (tensor.Backend, error) {
	return registry.New(backend, logger.FromContext(ctx))
}

// resolveDType prefers the flag, then the config file.
func resolveDType(cmd *cli.Command, flag string) (tensor.DataType, error) {
	if cmd.IsSet("dtype") {
		return tensor.ParseDataType(flag)
	}
	return cfg.DataType()
}
