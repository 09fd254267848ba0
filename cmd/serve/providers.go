package serve

import (
	"log/slog"

	"github.com/sig-0/tcbrates/fetch"
	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/provider/tcb"
	"github.com/sig-0/tcbrates/server/config"
)

// defaultProviders returns the served live rate providers
func defaultProviders(cfg *config.Config, logger *slog.Logger) ([]provider.Provider, error) {
	timeout, err := cfg.Source.RequestTimeout()
	if err != nil {
		return nil, err
	}

	// TCB foreign spot rates
	tcbProvider := tcb.New(
		fetch.NewHTTPFetcher(timeout),
		tcb.WithURL(cfg.Source.URL),
		tcb.WithLogger(logger),
	)

	return []provider.Provider{
		tcbProvider,
	}, nil
}
