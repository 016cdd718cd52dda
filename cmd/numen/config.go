package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/numen/pkg/api"
)

const (
	transportHTTP    = "http"
	transportChassis = "chassis"
	transportQUIC    = "quic"
)

type config struct {
	Addr      string `yaml:"addr"`
	Transport string `yaml:"transport"`
	CertFile  string `yaml:"cert_file"`
	KeyFile   string `yaml:"key_file"`
	LogLevel  string `yaml:"log_level"`

	Search struct {
		MaxLetters int `yaml:"max_letters"`
		MaxLimit   int `yaml:"max_limit"`
		Budget     int `yaml:"budget"`
	} `yaml:"search"`

	Dates struct {
		MaxRangeDays int `yaml:"max_range_days"`
	} `yaml:"dates"`

	Batch struct {
		MaxNames int `yaml:"max_names"`
		Workers  int `yaml:"workers"`
	} `yaml:"batch"`
}

func defaultConfig() config {
	d := api.DefaultLimits()
	cfg := config{
		Addr:      ":8420",
		Transport: transportHTTP,
		LogLevel:  "info",
	}
	cfg.Search.MaxLetters = d.MaxLetters
	cfg.Search.MaxLimit = d.MaxLimit
	cfg.Search.Budget = d.SearchBudget
	cfg.Dates.MaxRangeDays = d.MaxRangeDays
	cfg.Batch.MaxNames = d.MaxBatchNames
	cfg.Batch.Workers = d.BatchWorkers
	return cfg
}

// loadConfig reads path over the defaults. A missing file is not an error;
// found reports whether it existed.
func loadConfig(path string) (cfg config, found bool, err error) {
	cfg = defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, true, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, true, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, true, nil
}

func (c config) validate() error {
	switch c.Transport {
	case transportHTTP, transportChassis, transportQUIC:
	default:
		return fmt.Errorf("unknown transport %q (want %s, %s or %s)", c.Transport, transportHTTP, transportChassis, transportQUIC)
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return errors.New("cert_file and key_file must be set together")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c config) limits() api.Limits {
	return api.Limits{
		MaxLetters:    c.Search.MaxLetters,
		MaxLimit:      c.Search.MaxLimit,
		SearchBudget:  c.Search.Budget,
		MaxRangeDays:  c.Dates.MaxRangeDays,
		MaxBatchNames: c.Batch.MaxNames,
		BatchWorkers:  c.Batch.Workers,
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
