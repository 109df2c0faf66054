package handlers

//go:generate mockgen -source=rate.go -destination=rate_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// RateGetter defines the interface that the service must implement.
type RateGetter interface {
	GetRate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

// CurrencyLister lists supported currencies.
type CurrencyLister interface {
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}

// NewGetRateHandler returns an HTTP handler for a single conversion rate.
// @Summary Get conversion rate
// @Description Returns how many units of target one unit of base buys
// @Tags rates
// @Produce json
// @Param base query string true "Base currency" default(USD)
// @Param target query string true "Target currency" default(EUR)
// @Success 200 {object} models.RateResponse "Rate"
// @Failure 400 {object} models.ErrorResponse "Missing currency"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 422 {object} models.ErrorResponse "Conversion unavailable"
// @Router /rates [get]
// @Security BearerAuth
func NewGetRateHandler(svc RateGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requesterFrom(r); !ok {
			writeUnauthorized(w)
			return
		}

		base := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("base")))
		target := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("target")))
		if base == "" || target == "" {
			writeBadRequest(w, "base and target are required")
			return
		}

		rate, err := svc.GetRate(r.Context(), base, target)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to get rate", "base", base, "target", target, "error", err)
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.RateResponse{Base: base, Target: target, Rate: rate})
	}
}

// NewListCurrenciesHandler returns an HTTP handler listing supported currencies.
// @Summary List currencies
// @Description Returns every supported currency with its USD rate
// @Tags rates
// @Produce json
// @Success 200 {object} models.CurrenciesResponse "Currencies"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /currencies [get]
// @Security BearerAuth
func NewListCurrenciesHandler(svc CurrencyLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requesterFrom(r); !ok {
			writeUnauthorized(w)
			return
		}

		currencies, err := svc.ListCurrencies(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if currencies == nil {
			currencies = []models.Currency{}
		}

		writeJSON(w, http.StatusOK, models.CurrenciesResponse{Currencies: currencies})
	}
}
