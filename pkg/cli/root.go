package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/housing-price-predictor/pkg/api"
	"github.com/NVIDIA/housing-price-predictor/pkg/artifact"
	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
	"github.com/NVIDIA/housing-price-predictor/pkg/logging"
	"github.com/NVIDIA/housing-price-predictor/pkg/predictor"
	"github.com/NVIDIA/housing-price-predictor/pkg/serializer"
)

const (
	name           = "hpp"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
	}
}

func artifactsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "artifacts",
		Aliases: []string{"a"},
		Value:   defaults.ArtifactsDir,
		Usage:   "Directory holding the model, scaler and column artifacts",
		Sources: cli.EnvVars(api.EnvVarArtifactsDir),
	}
}

func unseenCategoryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "unseen-category",
		Value:   defaults.UnseenCategoryPolicy,
		Usage:   "Handling of categorical values the model was not fitted on (ignore, reject)",
		Sources: cli.EnvVars(api.EnvVarUnseenCategoryPolicy),
	}
}

// Execute runs the CLI with the process arguments and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Housing price prediction CLI",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Estimate housing prices with a pre-trained regression model.

Commands load the model artifacts from a directory (default: ./artifacts):
  serve   - run the prediction API server
  predict - estimate prices for one or more feature vectors
  inspect - summarize the loaded artifacts`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvVarLogLevel),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			predictCmd(),
			inspectCmd(),
		},
	}
}

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// loadService loads the artifacts named by the command flags.
func loadService(cmd *cli.Command, opts ...predictor.Option) (*predictor.Service, error) {
	policy, err := predictor.ParseUnseenCategoryPolicy(cmd.String("unseen-category"))
	if err != nil {
		return nil, err
	}

	store, err := artifact.Load(artifact.DefaultPaths(cmd.String("artifacts")))
	if err != nil {
		return nil, fmt.Errorf("failed to load artifacts: %w", err)
	}

	opts = append([]predictor.Option{predictor.WithUnseenCategoryPolicy(policy)}, opts...)
	return predictor.New(store, opts...), nil
}

// writeOutput serializes data to the --output destination in the --format format.
func writeOutput(ctx context.Context, cmd *cli.Command, data any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, data)
}
