package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/pelletier/go-toml"
)

const (
	DefaultListenAddress = "0.0.0.0:8545"
	DefaultSourceURL     = "https://www.tcb-bank.com.tw/finance_info/Pages/foreign_spot_rate.aspx"
	DefaultTimeout       = "30s"
	DefaultWatchInterval = "1h"
	DefaultWatchCurrency = "USD"
)

var (
	ErrInvalidListenAddress = errors.New("invalid listen address")
	ErrInvalidSourceURL     = errors.New("invalid source URL")
	ErrInvalidDuration      = errors.New("invalid duration")
	ErrInvalidCurrency      = errors.New("invalid currency")
)

var (
	listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)
	currencyRegex      = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// Config defines the base-level service configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The rate page the provider scrapes
	Source *Source `toml:"source"`

	// The periodic provider checks, if any
	Watch *Watch `toml:"watch"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`
}

// Source defines where and how the rate page is fetched
type Source struct {
	// The rate page URL
	URL string `toml:"url"`

	// The page request timeout, as a Go duration string (e.g. "30s")
	Timeout string `toml:"timeout"`
}

// Watch defines the periodic provider checks
type Watch struct {
	// The interval between checks, as a Go duration string (e.g. "1h")
	Interval string `toml:"interval"`

	// The reference currencies to check the provider with
	Currencies []string `toml:"currencies"`
}

// DefaultConfig returns the default service configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		CORSConfig:    DefaultCORSConfig(),
		Source: &Source{
			URL:     DefaultSourceURL,
			Timeout: DefaultTimeout,
		},
		Watch: &Watch{
			Interval:   DefaultWatchInterval,
			Currencies: []string{DefaultWatchCurrency},
		},
	}
}

// ValidateConfig validates the service configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	if config.Source != nil {
		u, err := url.Parse(config.Source.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidSourceURL
		}

		if _, err := config.Source.RequestTimeout(); err != nil {
			return err
		}
	}

	if config.Watch != nil {
		if _, err := config.Watch.CheckInterval(); err != nil {
			return err
		}

		for _, c := range config.Watch.Currencies {
			if !currencyRegex.MatchString(c) {
				return fmt.Errorf("%w: %q", ErrInvalidCurrency, c)
			}
		}
	}

	return nil
}

// RequestTimeout returns the parsed page request timeout
func (s *Source) RequestTimeout() (time.Duration, error) {
	return parsePositiveDuration(s.Timeout)
}

// CheckInterval returns the parsed interval between checks
func (w *Watch) CheckInterval() (time.Duration, error) {
	return parsePositiveDuration(w.Interval)
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDuration, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: %q is not positive", ErrInvalidDuration, s)
	}

	return d, nil
}

// Read reads the configuration from the given path.
// Values missing from the file keep their defaults
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	var cfg Config

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in the values the config file left out
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = defaults.ListenAddress
	}

	if cfg.Source == nil {
		cfg.Source = defaults.Source
	}

	if cfg.Source.URL == "" {
		cfg.Source.URL = defaults.Source.URL
	}

	if cfg.Source.Timeout == "" {
		cfg.Source.Timeout = defaults.Source.Timeout
	}

	if cfg.Watch != nil && cfg.Watch.Interval == "" {
		cfg.Watch.Interval = defaults.Watch.Interval
	}
}
