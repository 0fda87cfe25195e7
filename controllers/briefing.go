package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/api"
	"backend/config"
)

// Briefing is wired in main.
var Briefing api.BriefingClient

// GetBriefing asks the AI layer to narrate today's dashboard figures. The
// text is advisory; a failed call degrades to an error response without
// touching any state.
func GetBriefing(c *gin.Context) {
	if Briefing == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Briefing is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	text, err := Briefing.DailyBriefing(ctx, config.Store.Dashboard())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"briefing": text})
}

// GetForecast proxies the AI revenue projection. The payload is opaque
// JSON rendered by the dashboard chart directly.
func GetForecast(c *gin.Context) {
	if Briefing == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Briefing is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	forecast, err := Briefing.SalesForecast(ctx, config.Store.Sales())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}
