package tcb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sig-0/tcbrates/fetch"
	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/provider/currencies"
	"github.com/sig-0/tcbrates/types"
)

// DefaultURL is the TCB foreign spot rate page
const DefaultURL = "https://www.tcb-bank.com.tw/finance_info/Pages/foreign_spot_rate.aspx"

const name = "TCB"

// Provider is the TCB rate page scraping provider
type Provider struct {
	fetcher fetch.Fetcher
	logger  *slog.Logger
	now     func() time.Time
	url     string
}

// New creates a new instance of the TCB provider
func New(fetcher fetch.Fetcher, opts ...Option) *Provider {
	p := &Provider{
		fetcher: fetcher,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		url:     DefaultURL,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Provider) Name() string {
	return name
}

func (p *Provider) Base() types.Currency {
	return currencies.TWD
}

func (p *Provider) LiveRates(
	ctx context.Context,
	reference types.Currency,
) ([]*types.ExchangeRate, error) {
	if strings.TrimSpace(reference.String()) == "" {
		return nil, fmt.Errorf("%w: reference currency is required", provider.ErrInvalidArgument)
	}

	// Fetch the rate page
	doc, err := p.fetcher.Fetch(ctx, p.url)
	if err != nil {
		return nil, err
	}

	// The rates share a single capture instant
	capturedAt := p.now().UTC()

	rows, err := parseTable(doc)
	if err != nil {
		return nil, err
	}

	quotes, err := extractQuotes(rows)
	if err != nil {
		return nil, err
	}

	rates, err := normalize(quotes, p.Base(), reference, capturedAt, p.Name())
	if err != nil {
		return nil, err
	}

	p.logger.Debug(
		"fetched live rates",
		"reference", reference,
		"quoted", len(quotes),
		"rates", len(rates),
	)

	return rates, nil
}
