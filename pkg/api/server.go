package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/NVIDIA/housing-price-predictor/pkg/artifact"
	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
	"github.com/NVIDIA/housing-price-predictor/pkg/logging"
	"github.com/NVIDIA/housing-price-predictor/pkg/predictor"
	"github.com/NVIDIA/housing-price-predictor/pkg/server"
)

const (
	name           = "hppd"
	versionDefault = "dev"
)

const (
	// EnvVarArtifactsDir is the directory holding the model artifacts.
	EnvVarArtifactsDir = "ARTIFACTS_DIR"
	// EnvVarUnseenCategoryPolicy selects "ignore" or "reject".
	EnvVarUnseenCategoryPolicy = "UNSEEN_CATEGORY_POLICY"
	// EnvVarPredictionCacheSize sets the estimate cache size, 0 disables it.
	EnvVarPredictionCacheSize = "PREDICTION_CACHE_SIZE"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/housing-price-predictor/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Options configures the prediction server.
type Options struct {
	Paths                artifact.Paths
	UnseenCategoryPolicy predictor.UnseenCategoryPolicy
	CacheSize            int
	// Port overrides the server port when positive.
	Port     int
	LogLevel string
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Paths:                artifact.DefaultPaths(""),
		UnseenCategoryPolicy: predictor.UnseenCategoryPolicy(defaults.UnseenCategoryPolicy),
		CacheSize:            defaults.PredictionCacheSize,
	}
}

// OptionsFromEnv returns DefaultOptions with environment overrides applied.
func OptionsFromEnv() (Options, error) {
	opts := DefaultOptions()

	if dir := os.Getenv(EnvVarArtifactsDir); dir != "" {
		opts.Paths = artifact.DefaultPaths(dir)
	}

	policy, err := predictor.ParseUnseenCategoryPolicy(os.Getenv(EnvVarUnseenCategoryPolicy))
	if err != nil {
		return opts, fmt.Errorf("invalid %s: %w", EnvVarUnseenCategoryPolicy, err)
	}
	opts.UnseenCategoryPolicy = policy

	if v := os.Getenv(EnvVarPredictionCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid %s %q: want a non-negative integer", EnvVarPredictionCacheSize, v)
		}
		opts.CacheSize = n
	}

	opts.LogLevel = os.Getenv(logging.EnvVarLogLevel)
	return opts, nil
}

// Serve starts the API server configured from the environment and blocks
// until shutdown.
func Serve() error {
	opts, err := OptionsFromEnv()
	if err != nil {
		return err
	}
	return ServeWithOptions(context.Background(), opts)
}

// ServeWithOptions loads the artifacts, mounts the prediction routes and
// runs the server until ctx is canceled or a termination signal arrives.
// Artifact failures are returned before any listener is opened.
func ServeWithOptions(ctx context.Context, opts Options) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, opts.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := NewServer(opts)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewServer loads the artifacts named by opts and returns a server exposing
// the prediction routes. It does not start listening.
func NewServer(opts Options) (*server.Server, error) {
	store, err := artifact.Load(opts.Paths)
	if err != nil {
		return nil, err
	}

	svc := predictor.New(store,
		predictor.WithUnseenCategoryPolicy(opts.UnseenCategoryPolicy),
		predictor.WithCacheSize(opts.CacheSize),
	)

	cfg := server.NewConfig()
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}

	return server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithReadiness(svc.Ready),
		server.WithHandler(svc.Routes()),
	), nil
}

// Version returns the build version, commit and date.
func Version() (string, string, string) {
	return version, commit, date
}
