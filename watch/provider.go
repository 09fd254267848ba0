package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/types"
)

// ProviderJob periodically fetches a provider's live rates,
// so upstream failures and layout changes surface before a caller hits them
type ProviderJob struct {
	provider  provider.Provider
	reference types.Currency
	interval  time.Duration
}

// NewProviderJob creates a job fetching the provider's rates for the given reference currency
func NewProviderJob(
	p provider.Provider,
	reference types.Currency,
	interval time.Duration,
) *ProviderJob {
	return &ProviderJob{
		provider:  p,
		reference: reference,
		interval:  interval,
	}
}

func (j *ProviderJob) Name() string {
	return fmt.Sprintf("%s (%s)", j.provider.Name(), j.reference)
}

func (j *ProviderJob) Interval() time.Duration {
	return j.interval
}

func (j *ProviderJob) Run(ctx context.Context) (int, error) {
	rates, err := j.provider.LiveRates(ctx, j.reference)
	if err != nil {
		return 0, err
	}

	return len(rates), nil
}
