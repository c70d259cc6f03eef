package main

import (
	"github.com/joho/godotenv"

	"pharmarisk/internal"
	"pharmarisk/internal/config"
	"pharmarisk/internal/container"
)

type rootOptions struct {
	modelPath string
	logLevel  string
	lotCount  int
}

func bootstrap(opts *rootOptions) (*container.Container, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	opts.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	internal.DefaultLogger = logger

	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Initialize(); err != nil {
		return nil, err
	}
	return c, nil
}

func (o *rootOptions) apply(cfg *config.Config) {
	if o.modelPath != "" {
		cfg.Model.Path = o.modelPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.lotCount > 0 {
		cfg.Data.LotCount = o.lotCount
	}
}
