// Package config reads the car pipeline configuration from the environment and
// an optional .env file, and builds the process logger.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	EnvDataDir         = "DATARAILS_DATA_DIR"
	EnvProcessedDir    = "DATARAILS_PROCESSED_DIR"
	EnvWeightThreshold = "DATARAILS_WEIGHT_THRESHOLD"
	EnvManifest        = "DATARAILS_MANIFEST"
	EnvLogLevel        = "DATARAILS_LOG_LEVEL"
	EnvGraphFile       = "DATARAILS_GRAPH_FILE"
	EnvValidate        = "DATARAILS_VALIDATE"
)

type Config struct {
	DataDir         string
	ProcessedDir    string
	WeightThreshold float64
	// ManifestPath is empty when the default step list is used.
	ManifestPath string
	LogLevel     zerolog.Level
	// GraphFile is empty when no drawing is requested.
	GraphFile string
	Validate  bool
}

// Load reads the configuration. When envfile is set, it is loaded first;
// variables already set in the environment take precedence over it.
func Load(envfile string) (*Config, error) {
	if envfile != "" {
		err := godotenv.Load(envfile)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load %s", envfile)
		}
	}

	threshold, err := getFloatEnv(EnvWeightThreshold, 2000)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(strings.ToLower(GetEnv(EnvLogLevel, "info")))
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not a log level", EnvLogLevel)
	}

	validate, err := getBoolEnv(EnvValidate, true)
	if err != nil {
		return nil, err
	}

	return &Config{
		DataDir:         GetEnv(EnvDataDir, "data"),
		ProcessedDir:    GetEnv(EnvProcessedDir, "processed"),
		WeightThreshold: threshold,
		ManifestPath:    GetEnv(EnvManifest, ""),
		LogLevel:        level,
		GraphFile:       GetEnv(EnvGraphFile, ""),
		Validate:        validate,
	}, nil
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Errorf("%s must be a number, got %q", key, raw)
	}

	return value, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Errorf("%s must be a boolean, got %q", key, raw)
	}

	return value, nil
}

// NewLogger builds a console logger writing to out.
func NewLogger(level zerolog.Level, out io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("  %s  ", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
