package rates

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/tcbrates/cmd/env"
	"github.com/sig-0/tcbrates/fetch"
	"github.com/sig-0/tcbrates/provider/tcb"
	"github.com/sig-0/tcbrates/types"
)

var errMissingReference = errors.New("reference currency not provided")

// ratesCfg wraps the rates configuration
type ratesCfg struct {
	out io.Writer

	url     string
	timeout time.Duration
}

// NewRatesCmd creates the rates subcommand
func NewRatesCmd() *ffcli.Command {
	cfg := &ratesCfg{
		out: os.Stdout,
	}

	fs := flag.NewFlagSet("rates", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "rates",
		ShortUsage: "rates [flags] <reference currency>",
		LongHelp:   "Fetches the live TCB rates, relative to the given reference currency",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *ratesCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.url,
		"url",
		tcb.DefaultURL,
		"the TCB rate page URL",
	)

	fs.DurationVar(
		&c.timeout,
		"timeout",
		time.Second*30,
		"the rate page request timeout",
	)
}

func (c *ratesCfg) exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errMissingReference
	}

	p := tcb.New(
		fetch.NewHTTPFetcher(c.timeout),
		tcb.WithURL(c.url),
	)

	reference := types.Currency(strings.ToUpper(strings.TrimSpace(args[0])))

	rates, err := p.LiveRates(ctx, reference)
	if err != nil {
		return fmt.Errorf("unable to fetch %s rates: %w", reference, err)
	}

	encoder := json.NewEncoder(c.out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(rates)
}
