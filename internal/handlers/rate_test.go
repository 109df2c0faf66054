package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetRateHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name               string
		target             string
		claims             *jwt.Claims
		setupMocks         func(m *MockRateGetter)
		expectedStatusCode int
		wantBody           map[string]any
	}{
		{
			name:   "success",
			target: "/rates?base=usd&target=eur",
			claims: userClaims(userID),
			setupMocks: func(m *MockRateGetter) {
				m.EXPECT().GetRate(gomock.Any(), "USD", "EUR").Return(decimal.RequireFromString("0.9"), nil)
			},
			expectedStatusCode: http.StatusOK,
			wantBody:           map[string]any{"base": "USD", "target": "EUR", "rate": "0.9"},
		},
		{
			name:               "missing target",
			target:             "/rates?base=USD",
			claims:             userClaims(userID),
			setupMocks:         func(m *MockRateGetter) {},
			expectedStatusCode: http.StatusBadRequest,
			wantBody:           map[string]any{"error": "base and target are required"},
		},
		{
			name:   "conversion unavailable",
			target: "/rates?base=USD&target=XYZ",
			claims: userClaims(userID),
			setupMocks: func(m *MockRateGetter) {
				m.EXPECT().GetRate(gomock.Any(), "USD", "XYZ").
					Return(decimal.Zero, fmt.Errorf("%w: USD->XYZ: no rate", xerrors.ErrConversionUnavailable))
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			wantBody:           map[string]any{"error": "currency conversion unavailable: USD->XYZ: no rate"},
		},
		{
			name:               "unauthorized",
			target:             "/rates?base=USD&target=EUR",
			setupMocks:         func(m *MockRateGetter) {},
			expectedStatusCode: http.StatusUnauthorized,
			wantBody:           map[string]any{"error": "Unauthorized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockRateGetter(ctrl)
			tt.setupMocks(mockSvc)

			rr := serve(t, "/rates", NewGetRateHandler(mockSvc), http.MethodGet, tt.target, nil, tt.claims)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			assert.Equal(t, tt.wantBody, decodeJSON(t, rr))
		})
	}
}

func TestListCurrenciesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockCurrencyLister(ctrl)
	h := NewListCurrenciesHandler(mockSvc)

	mockSvc.EXPECT().ListCurrencies(gomock.Any()).Return([]models.Currency{
		{Code: "EUR", Name: "Euro", RateToUSD: decimal.RequireFromString("1.1")},
		{Code: "USD", Name: "US Dollar", RateToUSD: decimal.NewFromInt(1)},
	}, nil)
	rr := serve(t, "/currencies", h, http.MethodGet, "/currencies", nil, userClaims(uuid.New()))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeJSON(t, rr)["currencies"], 2)

	mockSvc.EXPECT().ListCurrencies(gomock.Any()).Return(nil, fmt.Errorf("db down"))
	rr = serve(t, "/currencies", h, http.MethodGet, "/currencies", nil, userClaims(uuid.New()))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
