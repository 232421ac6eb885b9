package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"agribot/internal/config"
	"agribot/internal/engine"
	"agribot/internal/knowledge"
	"agribot/internal/logging"
	"agribot/internal/responder"
)

// loadConfig reads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config, honoring --verbose.
func newLogger(cfg *config.Config) *logrus.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(level, cfg.LogJSON)
}

// newEngine assembles the conversational pipeline. recorder may be nil.
func newEngine(rec engine.Recorder, log *logrus.Logger) (*engine.Engine, error) {
	kb, err := knowledge.New()
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	gen := responder.NewGenerator(kb, rand.New(rand.NewSource(time.Now().UnixNano())))
	return engine.New(gen, rec, log), nil
}
