package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rates_service/internal/dto"
	"github.com/SscSPs/fx_rates_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// adminHandler exposes the refresh trigger and provider diagnostics.
type adminHandler struct {
	refreshService    portssvc.RateRefreshSvc
	aggregatorService portssvc.RateAggregatorSvc
}

func newAdminHandler(refresh portssvc.RateRefreshSvc, aggregator portssvc.RateAggregatorSvc) *adminHandler {
	return &adminHandler{
		refreshService:    refresh,
		aggregatorService: aggregator,
	}
}

// registerAdminRoutes registers the admin routes. refreshLimiter may be nil.
func registerAdminRoutes(rg *gin.RouterGroup, refresh portssvc.RateRefreshSvc, aggregator portssvc.RateAggregatorSvc, refreshLimiter *limiter.Limiter) {
	h := newAdminHandler(refresh, aggregator)

	admin := rg.Group("/admin")
	{
		refreshChain := []gin.HandlerFunc{}
		if refreshLimiter != nil {
			refreshChain = append(refreshChain, middleware.RateLimit(refreshLimiter))
		}
		refreshChain = append(refreshChain, h.refreshRates)
		admin.POST("/rates/refresh", refreshChain...)

		admin.GET("/providers/health", h.providerHealth)
		admin.GET("/providers/rates/:base", h.previewRates)
	}
}

// refreshRates godoc
// @Summary Run a refresh pass now
// @Description Fetches the latest rates for every currency and stores them. Per-rate failures are listed in the summary; the pass itself never fails.
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.RefreshSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Security BearerAuth
// @Router /admin/rates/refresh [post]
func (h *adminHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Manual rate refresh requested")

	summary := h.refreshService.RefreshAll(c.Request.Context())

	logger.Info("Manual rate refresh finished",
		slog.Int("rates_saved", summary.RatesSaved),
		slog.Int("failures", len(summary.Failures)))
	c.JSON(http.StatusOK, dto.ToRefreshSummaryResponse(summary))
}

// providerHealth godoc
// @Summary Provider circuit states
// @Description Reports the circuit breaker state of every rate provider and whether the provider set is degraded
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.ProviderHealthResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /admin/providers/health [get]
func (h *adminHandler) providerHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToProviderHealthResponse(h.aggregatorService.ProviderHealth()))
}

// previewRates godoc
// @Summary Consult the providers without storing anything
// @Description Walks the providers for one base currency and returns the chosen rates with the attempt log
// @Tags admin
// @Produce  json
// @Param   base path string true "Base Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.AggregatedRatesResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /admin/providers/rates/{base} [get]
func (h *adminHandler) previewRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	base := strings.ToUpper(strings.TrimSpace(c.Param("base")))
	if len(base) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	result := h.aggregatorService.FetchLatestRates(c.Request.Context(), base)
	logger.Info("Provider preview", slog.String("base", base), slog.Int("attempts", len(result.ProviderAttempts())))
	c.JSON(http.StatusOK, dto.ToAggregatedRatesResponse(base, result))
}
