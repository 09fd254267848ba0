package tcb

import (
	"log/slog"
	"time"
)

type Option func(p *Provider)

// WithURL specifies the rate page URL
func WithURL(url string) Option {
	return func(p *Provider) {
		p.url = url
	}
}

// WithLogger specifies the logger for the provider
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

// WithClock specifies the time source used to stamp the rates
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}
