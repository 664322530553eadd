package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/apperrors"
	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rates_service/internal/dto"
	"github.com/SscSPs/fx_rates_service/internal/handlers"
	"github.com/SscSPs/fx_rates_service/internal/middleware"
	"github.com/SscSPs/fx_rates_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	currency     *MockCurrencyService
	exchangeRate *MockExchangeRateService
	aggregator   *MockRateAggregator
	refresh      *MockRateRefresh
	jwtSecret    string
	userID       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *HandlersTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fx-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.currency = new(MockCurrencyService)
	suite.exchangeRate = new(MockExchangeRateService)
	suite.aggregator = new(MockRateAggregator)
	suite.refresh = new(MockRateRefresh)

	cfg := &config.Config{
		JWTSecret:             suite.jwtSecret,
		IsProduction:          true,
		AdminRefreshRateLimit: "2-M",
	}
	container := &portssvc.ServiceContainer{
		Currency:     suite.currency,
		ExchangeRate: suite.exchangeRate,
		Aggregator:   suite.aggregator,
		Refresh:      suite.refresh,
	}

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(nil))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container, handlers.RouteOptions{Gatherer: prometheus.NewRegistry()}))
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestHealth() {
	suite.aggregator.On("ProviderHealth").Return(domain.NewProviderHealth([]domain.ProviderStatus{
		{Name: "mock-a", CircuitState: domain.CircuitOpen},
		{Name: "mock-b", CircuitState: domain.CircuitOpen},
		{Name: "fixer", CircuitState: domain.CircuitClosed, Available: true},
	})).Once()

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("degraded", body["status"])
	suite.EqualValues(1, body["providersAvailable"])
}

func (suite *HandlersTestSuite) TestMetricsEndpoint() {
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestRequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.currency.AssertNotCalled(suite.T(), "ListCurrencies", mock.Anything)
}

func (suite *HandlersTestSuite) TestListCurrencies() {
	suite.currency.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
		{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
	suite.Equal("EUR", body[0].CurrencyCode)
}

func (suite *HandlersTestSuite) TestCreateCurrency() {
	req := dto.CreateCurrencyRequest{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc"}
	suite.currency.On("CreateCurrency", mock.Anything, req, suite.userID).
		Return(&domain.Currency{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc", Precision: 2}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/currencies", req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.currency.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCreateCurrency_Duplicate() {
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}
	suite.currency.On("CreateCurrency", mock.Anything, req, suite.userID).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/currencies", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestCreateCurrency_BadRequest() {
	w := suite.do(http.MethodPost, "/api/v1/currencies", map[string]string{"currencyCode": "usd"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.currency.AssertNotCalled(suite.T(), "CreateCurrency", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestGetCurrency_NotFound() {
	suite.currency.On("GetCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.NewNotFoundError("currency 'XXX' not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/XXX", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestGetExchangeRate() {
	suite.exchangeRate.On("GetExchangeRate", mock.Anything, "USD", "EUR").Return(&domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.92"),
		Provider:         "mock-a",
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/USD/EUR", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("mock-a", body.Provider)
	suite.True(body.Rate.Equal(decimal.RequireFromString("0.92")))
}

func (suite *HandlersTestSuite) TestGetExchangeRate_NotFound() {
	suite.exchangeRate.On("GetExchangeRate", mock.Anything, "USD", "JPY").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/USD/JPY", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestListLatestRates() {
	suite.exchangeRate.On("ListLatestRates", mock.Anything, "USD").Return([]domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.9")},
		{FromCurrencyCode: "USD", ToCurrencyCode: "GBP", Rate: decimal.RequireFromString("0.8")},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/USD", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
}

func (suite *HandlersTestSuite) TestCreateExchangeRate_Validation() {
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XXX",
		Rate:             decimal.RequireFromString("1.5"),
		DateEffective:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.exchangeRate.On("CreateExchangeRate", mock.Anything, mock.AnythingOfType("dto.CreateExchangeRateRequest"), suite.userID).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestRefreshRates() {
	summary := domain.RefreshSummary{
		CurrenciesInSystem:  2,
		CurrenciesProcessed: 2,
		ProvidersWithData:   1,
		RatesSaved:          1,
		Failures:            []string{"failed to save rate USD->XXX: currency 'XXX' not found"},
	}
	suite.refresh.On("RefreshAll", mock.Anything).Return(summary).Once()

	w := suite.do(http.MethodPost, "/api/v1/admin/rates/refresh", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.RefreshSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(1, body.RatesSaved)
	suite.Equal(summary.Failures, body.Failures)
	suite.NotEmpty(w.Header().Get("X-RateLimit-Limit"))
}

func (suite *HandlersTestSuite) TestRefreshRates_RateLimited() {
	suite.refresh.On("RefreshAll", mock.Anything).Return(domain.RefreshSummary{Failures: []string{}})

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/admin/rates/refresh", nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/admin/rates/refresh", nil).Code)
	w := suite.do(http.MethodPost, "/api/v1/admin/rates/refresh", nil)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.refresh.AssertNumberOfCalls(suite.T(), "RefreshAll", 2)
}

func (suite *HandlersTestSuite) TestProviderHealth() {
	suite.aggregator.On("ProviderHealth").Return(domain.NewProviderHealth([]domain.ProviderStatus{
		{Name: "mock-a", CircuitState: domain.CircuitClosed, Available: true},
		{Name: "mock-b", CircuitState: domain.CircuitOpen},
	})).Once()

	w := suite.do(http.MethodGet, "/api/v1/admin/providers/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ProviderHealthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2, body.Total)
	suite.Equal(1, body.Available)
	suite.False(body.Degraded)
	suite.Equal(domain.CircuitOpen, body.Providers[1].CircuitState)
}

func (suite *HandlersTestSuite) TestPreviewRates() {
	chosen := domain.NewProviderRatesResponse("mock-b", "USD", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")})
	suite.aggregator.On("FetchLatestRates", mock.Anything, "USD").Return(domain.AggregationSuccess{
		Chosen: chosen,
		Attempts: []domain.ProviderAttempt{
			{ProviderName: "mock-a", ErrorMessage: "provider mock-a unavailable: circuit open"},
			{ProviderName: "mock-b", ReturnedData: true},
		},
	}).Once()

	w := suite.do(http.MethodGet, "/api/v1/admin/providers/rates/usd", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AggregatedRatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.HasData)
	suite.Equal("mock-b", body.Provider)
	suite.Len(body.Attempts, 2)
	suite.True(strings.Contains(body.Attempts[0].ErrorMessage, "circuit open"))
}

func (suite *HandlersTestSuite) TestPreviewRates_NoData() {
	suite.aggregator.On("FetchLatestRates", mock.Anything, "EUR").Return(domain.AggregationNoData{}).Once()

	w := suite.do(http.MethodGet, "/api/v1/admin/providers/rates/EUR", nil)

	suite.Equal(http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"hasData":false`)
	assert.Contains(suite.T(), w.Body.String(), `"attempts":[]`)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
