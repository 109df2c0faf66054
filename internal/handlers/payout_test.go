package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/services"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/stretchr/testify/assert"
)

func TestPayoutHandler(t *testing.T) {
	userID := uuid.New()
	req := models.PayoutRequest{
		SourceWalletID: uuid.New(),
		BankAccount:    "ACC-00991",
		Amount:         dec("75.00"),
		Currency:       "USD",
	}

	tests := []struct {
		name               string
		requestBody        any
		claims             *jwt.Claims
		setupMocks         func(m *MockPayouter)
		expectedStatusCode int
	}{
		{
			name:        "payout pending",
			requestBody: req,
			claims:      userClaims(userID),
			setupMocks: func(m *MockPayouter) {
				result := sampleResult(false)
				result.Transaction.Status = models.StatusPending
				m.EXPECT().Payout(gomock.Any(), userID, gomock.Any()).
					Return(result, &models.PaymentRecord{RecordID: uuid.New(), Status: models.RecordPending}, nil)
			},
			expectedStatusCode: http.StatusAccepted,
		},
		{
			name:        "replayed payout",
			requestBody: req,
			claims:      userClaims(userID),
			setupMocks: func(m *MockPayouter) {
				m.EXPECT().Payout(gomock.Any(), userID, gomock.Any()).Return(sampleResult(true), nil, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "invalid request body",
			requestBody:        "amount=75",
			claims:             userClaims(userID),
			setupMocks:         func(m *MockPayouter) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "insufficient funds",
			requestBody: req,
			claims:      userClaims(userID),
			setupMocks: func(m *MockPayouter) {
				m.EXPECT().Payout(gomock.Any(), userID, gomock.Any()).Return(nil, nil, xerrors.ErrInsufficientFunds)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "unauthorized",
			requestBody:        req,
			setupMocks:         func(m *MockPayouter) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockPayouter(ctrl)
			tt.setupMocks(mockSvc)

			rr := serve(t, "/payouts", NewPayoutHandler(mockSvc), http.MethodPost, "/payouts", tt.requestBody, tt.claims)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}

func TestConfirmPayoutHandler(t *testing.T) {
	adminID := uuid.New()
	transactionID := uuid.New()
	const pattern = "/payouts/{transactionID}/confirm"
	target := "/payouts/" + transactionID.String() + "/confirm"

	tests := []struct {
		name               string
		target             string
		requestBody        any
		setupMocks         func(m *MockPayoutSettler)
		expectedStatusCode int
	}{
		{
			name:        "payout completed",
			target:      target,
			requestBody: models.ConfirmPayoutRequest{Success: true, ExternalID: "pout_1"},
			setupMocks: func(m *MockPayoutSettler) {
				m.EXPECT().
					Settle(gomock.Any(), transactionID, services.GatewayOutcome{Success: true, ExternalID: "pout_1"}).
					Return(sampleResult(false), nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:        "payout failed",
			target:      target,
			requestBody: models.ConfirmPayoutRequest{Success: false, Reason: "account closed"},
			setupMocks: func(m *MockPayoutSettler) {
				m.EXPECT().
					Settle(gomock.Any(), transactionID, services.GatewayOutcome{Reason: "account closed"}).
					Return(sampleResult(false), nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:        "contradicting outcome",
			target:      target,
			requestBody: models.ConfirmPayoutRequest{Success: true},
			setupMocks: func(m *MockPayoutSettler) {
				m.EXPECT().Settle(gomock.Any(), transactionID, gomock.Any()).Return(nil, xerrors.ErrInvalidTransition)
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:        "unknown transaction",
			target:      target,
			requestBody: models.ConfirmPayoutRequest{Success: true},
			setupMocks: func(m *MockPayoutSettler) {
				m.EXPECT().Settle(gomock.Any(), transactionID, gomock.Any()).Return(nil, xerrors.ErrTransactionNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "invalid transaction id",
			target:             "/payouts/abc/confirm",
			requestBody:        models.ConfirmPayoutRequest{Success: true},
			setupMocks:         func(m *MockPayoutSettler) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockPayoutSettler(ctrl)
			tt.setupMocks(mockSvc)

			rr := serve(t, pattern, NewConfirmPayoutHandler(mockSvc), http.MethodPost, tt.target, tt.requestBody, adminClaims(adminID))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}
