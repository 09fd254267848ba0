package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/tcbrates/cmd/env"
	"github.com/sig-0/tcbrates/server"
	"github.com/sig-0/tcbrates/server/config"
	"github.com/sig-0/tcbrates/types"
	"github.com/sig-0/tcbrates/watch"
)

// serveCfg wraps the serve configuration
type serveCfg struct {
	config *config.Config

	configPath string
	listen     string
	debug      bool
}

// NewServeCmd creates the serve subcommand
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [flags]",
		LongHelp:   "Serves the tcbrates backend",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.listen,
		"listen",
		"",
		fmt.Sprintf("the IP:PORT URL for the server (default %s)", config.DefaultListenAddress),
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the TOML configuration, if any",
	)

	fs.BoolVar(
		&c.debug,
		"debug",
		false,
		"enables debug logging",
	)
}

func (c *serveCfg) exec(ctx context.Context, _ []string) error {
	// Read the configuration, if any
	if c.configPath != "" {
		fileCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read config, %w", err)
		}

		c.config = fileCfg
	}

	// The flag takes precedence over the file
	if c.listen != "" {
		c.config.ListenAddress = c.listen
	}

	if err := config.ValidateConfig(c.config); err != nil {
		return fmt.Errorf("invalid config, %w", err)
	}

	level := slog.LevelInfo
	if c.debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	providers, err := defaultProviders(c.config, logger)
	if err != nil {
		return fmt.Errorf("unable to set up providers, %w", err)
	}

	// Set up the periodic provider checks
	var (
		tracker      = watch.NewTracker()
		orchestrator = watch.New(
			watch.WithLogger(logger),
			watch.WithReporter(tracker),
		)
	)

	if c.config.Watch != nil {
		interval, err := c.config.Watch.CheckInterval()
		if err != nil {
			return err
		}

		for _, p := range providers {
			for _, currency := range c.config.Watch.Currencies {
				job := watch.NewProviderJob(
					p,
					types.Currency(strings.ToUpper(currency)),
					interval,
				)

				if err := orchestrator.Register(job); err != nil {
					return fmt.Errorf("unable to register watch job: %w", err)
				}
			}
		}
	}

	// Create the server instance
	s, err := server.New(
		providers,
		server.WithLogger(logger),
		server.WithConfig(c.config),
		server.WithStatus(tracker),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	// Start the HTTP server
	group.Go(func() error {
		return s.Serve(gCtx)
	})

	// Start the watch service
	group.Go(func() error {
		return orchestrator.Start(gCtx)
	})

	return group.Wait()
}
