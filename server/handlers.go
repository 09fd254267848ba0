package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sig-0/tcbrates/fetch"
	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/types"
	"github.com/sig-0/tcbrates/watch"
)

var (
	errUnknownProvider     = errors.New("unknown provider")
	errUpstreamUnavailable = errors.New("rate source unavailable")
	errUnableToFetchRates  = errors.New("unable to fetch rates")
)

func (s *Server) Providers(w http.ResponseWriter, _ *http.Request) {
	items := make([]ProviderInfo, 0, len(s.names))

	for _, key := range s.names {
		p := s.providers[key]

		items = append(items, ProviderInfo{
			Name: p.Name(),
			Base: p.Base(),
		})
	}

	resp := &ProvidersResponse{
		Results: items,
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) LiveRates(w http.ResponseWriter, r *http.Request) {
	var (
		providerParam  = chi.URLParam(r, "provider")
		referenceParam = chi.URLParam(r, "reference")
	)

	p, ok := s.providers[strings.ToLower(strings.TrimSpace(providerParam))]
	if !ok {
		writeError(w, http.StatusNotFound, errUnknownProvider)

		return
	}

	// Parse the reference currency
	reference, err := parseCurrencySymbol(referenceParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	rates, err := p.LiveRates(r.Context(), reference)
	if err != nil {
		s.writeProviderError(w, p, err)

		return
	}

	resp := &RatesResponse{
		Provider:  p.Name(),
		Reference: reference,
		Results:   rates,
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) Status(w http.ResponseWriter, _ *http.Request) {
	items := make([]watch.Status, 0)

	if s.status != nil {
		items = append(items, s.status.Statuses()...)
	}

	resp := &StatusResponse{
		Results: items,
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeProviderError maps a provider failure to a response.
// Upstream and internal failures are logged, not exposed
func (s *Server) writeProviderError(w http.ResponseWriter, p provider.Provider, err error) {
	var fetchErr *fetch.FetchError

	switch {
	case errors.Is(err, provider.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, provider.ErrUnsupportedCurrency):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, provider.ErrParse), errors.As(err, &fetchErr):
		s.logger.Error(
			"rate source unavailable",
			"provider", p.Name(),
			"err", err,
		)

		writeError(w, http.StatusBadGateway, errUpstreamUnavailable)
	default:
		s.logger.Error(
			"unable to fetch rates",
			"provider", p.Name(),
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToFetchRates)
	}
}

func parseCurrencySymbol(v string) (types.Currency, error) {
	s := strings.ToUpper(strings.TrimSpace(v))
	if len(s) != 3 {
		return "", errors.New("invalid currency (must be 3 letters)")
	}

	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", errors.New("invalid currency (must be A-Z)")
		}
	}

	return types.Currency(s), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
