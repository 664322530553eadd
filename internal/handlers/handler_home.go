package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports liveness and whether fewer than half of the rate providers are available.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(aggregator portssvc.RateAggregatorSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := aggregator.ProviderHealth()
		status := "ok"
		if health.Degraded {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":             status,
			"providersAvailable": health.Available,
			"providersTotal":     health.Total,
		})
	}
}
