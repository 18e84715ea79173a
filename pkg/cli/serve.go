package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/housing-price-predictor/pkg/api"
	"github.com/NVIDIA/housing-price-predictor/pkg/artifact"
	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
	"github.com/NVIDIA/housing-price-predictor/pkg/predictor"
	"github.com/NVIDIA/housing-price-predictor/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the prediction API server",
		Description: `Load the artifacts and serve predictions over HTTP until interrupted.

The server refuses to start when an artifact is missing or invalid.`,
		Flags: []cli.Flag{
			artifactsFlag(),
			unseenCategoryFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP server port (default: 8080)",
				Sources: cli.EnvVars(server.EnvVarPort),
			},
			&cli.IntFlag{
				Name:    "cache-size",
				Value:   defaults.PredictionCacheSize,
				Usage:   "Number of cached estimates, 0 disables the cache",
				Sources: cli.EnvVars(api.EnvVarPredictionCacheSize),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := serveOptions(cmd)
			if err != nil {
				return err
			}
			return api.ServeWithOptions(ctx, opts)
		},
	}
}

func serveOptions(cmd *cli.Command) (api.Options, error) {
	policy, err := predictor.ParseUnseenCategoryPolicy(cmd.String("unseen-category"))
	if err != nil {
		return api.Options{}, err
	}

	cacheSize := cmd.Int("cache-size")
	if cacheSize < 0 {
		return api.Options{}, fmt.Errorf("invalid cache size %d: must not be negative", cacheSize)
	}

	return api.Options{
		Paths:                artifact.DefaultPaths(cmd.String("artifacts")),
		UnseenCategoryPolicy: policy,
		CacheSize:            cacheSize,
		Port:                 cmd.Int("port"),
		LogLevel:             cmd.String("log-level"),
	}, nil
}
