// Package main runs the car data pipeline.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-datarails/examples/cars"
	"github.com/askiada/go-datarails/internal/config"
	"github.com/askiada/go-datarails/pkg/datarails"
	"github.com/askiada/go-datarails/pkg/datarails/drawer"
	"github.com/askiada/go-datarails/pkg/datarails/manifest"
	"github.com/askiada/go-datarails/pkg/datarails/measure"
	"github.com/askiada/go-datarails/pkg/datarails/model"
)

// ExitCodeOK signals that the program terminated normally.
const ExitCodeOK = 0

// ExitCodeInvalidConfig signals an invalid configuration, manifest or step list.
const ExitCodeInvalidConfig = 1

// ExitCodeRunFailed signals that a step action failed.
const ExitCodeRunFailed = 3

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	code := run(ctx, os.Args[1:], os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("datarails-cars", flag.ContinueOnError)
	flags.SetOutput(stderr)

	envFile := ""
	manifestPath := ""
	flags.StringVar(&envFile, "env", envFile, "The .env file to load, if any.")
	flags.StringVar(&manifestPath, "manifest", manifestPath,
		"The YAML manifest listing the steps to run. Overrides "+config.EnvManifest+".")

	err := flags.Parse(args)
	if err != nil {
		return ExitCodeInvalidConfig
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		tempLogger := config.NewLogger(zerolog.InfoLevel, stderr)
		tempLogger.Error().Err(err).Msg("failed to load configuration")

		return ExitCodeInvalidConfig
	}
	if manifestPath != "" {
		cfg.ManifestPath = manifestPath
	}

	logger := config.NewLogger(cfg.LogLevel, stderr).With().Str("source", "main").Logger()

	steps, dctx, err := pipeline(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("invalid pipeline")

		return ExitCodeInvalidConfig
	}

	msr := measure.NewDefaultMeasure()
	hooks := []model.RunnerOption{measure.PipelineMeasure(msr)}
	if cfg.GraphFile != "" {
		hooks = append(hooks, drawer.PipelineDrawer(drawer.NewDOTDrawer(cfg.GraphFile), msr))
	}

	opts := []datarails.Option{
		datarails.WithContext(dctx),
		datarails.WithLogger(logger),
		datarails.WithHooks(hooks...),
	}
	if cfg.Validate {
		opts = append(opts, datarails.WithValidation())
	}

	runner, err := datarails.New(steps, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create runner")

		return ExitCodeInvalidConfig
	}

	err = runner.Run(ctx)
	if err != nil {
		if errors.Is(err, datarails.ErrConfiguration) {
			return ExitCodeInvalidConfig
		}

		return ExitCodeRunFailed
	}

	logMetrics(logger, msr)

	return ExitCodeOK
}

// pipeline returns the steps and Context to run. Without a manifest, it is the
// car pipeline seeded from cfg. With one, the manifest fields win over cfg.
func pipeline(cfg *config.Config) ([]datarails.Definition, *datarails.Context, error) {
	defaults := map[string]any{
		cars.KeyDataDir:         cfg.DataDir,
		cars.KeyProcessedDir:    cfg.ProcessedDir,
		cars.KeyWeightThreshold: cfg.WeightThreshold,
	}

	if cfg.ManifestPath == "" {
		return cars.Steps(), datarails.NewContext(defaults), nil
	}

	reg := datarails.NewRegistry()
	err := cars.Register(reg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to register car steps")
	}

	m, err := manifest.LoadFile(cfg.ManifestPath)
	if err != nil {
		return nil, nil, err
	}

	steps, dctx, err := m.Build(reg)
	if err != nil {
		return nil, nil, err
	}

	for _, key := range sortedKeys(defaults) {
		if !dctx.Has(key) {
			dctx.Put(key, defaults[key])
		}
	}

	return steps, dctx, nil
}

func logMetrics(logger zerolog.Logger, msr measure.Measure) {
	metrics := msr.AllMetrics()
	for _, name := range sortedKeys(metrics) {
		mt := metrics[name]
		logger.Info().
			Str("metric", name).
			Int64("count", mt.Count()).
			Dur("avg", mt.AVGDuration()).
			Dur("total", mt.GetTotalDuration()).
			Msg("metric")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
