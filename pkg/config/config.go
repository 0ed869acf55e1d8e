// Package config loads service configuration from the environment, with an
// optional env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/munderdifflin/orderflow/pkg/logx"
)

// Config carries everything the worker and CLI need. Defaults keep a local
// single-node setup working with no environment at all.
type Config struct {
	TemporalHostPort string `split_words:"true" default:"localhost:7233"`
	TaskQueue        string `split_words:"true" default:"order-orchestration"`
	DatabasePath     string `split_words:"true" default:"orderflow.db"`

	RetryMaxAttempts     int32         `split_words:"true" default:"3"`
	RetryInitialInterval time.Duration `split_words:"true" default:"1s"`
	RetryMaxInterval     time.Duration `split_words:"true" default:"10s"`

	QuoteTTL        time.Duration `envconfig:"QUOTE_TTL" default:"15m"`
	ApprovalTimeout time.Duration `split_words:"true" default:"0"`
	ReviewThreshold float64       `split_words:"true" default:"1000"`

	Log logx.Config `split_words:"true"`
}

// Load populates Config from the environment under the ORDERFLOW prefix.
// envFile, when non-empty, is exported into the environment first.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := exportEnvironment(envFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else if err := exportEnvironmentIfExists(".env"); err != nil {
		return nil, fmt.Errorf("load default env file: %w", err)
	}

	var conf Config
	if err := envconfig.Process("orderflow", &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func exportEnvironmentIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(path)
}

func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	for k, val := range v.AllSettings() {
		if err := os.Setenv(strings.ToUpper(k), fmt.Sprint(val)); err != nil {
			return err
		}
	}
	return nil
}
