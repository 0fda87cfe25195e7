package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/api"
	"backend/config"
	"backend/middleware"
	"backend/models"
)

// Realtime is wired in main. Nil means no realtime channel configured.
var Realtime *api.Broadcaster

func GetSales(c *gin.Context) {
	c.JSON(http.StatusOK, config.Store.Sales())
}

// ProcessSale books a sale, then re-evaluates missions so the response can
// carry completion notifications alongside the sale itself.
func ProcessSale(c *gin.Context) {
	var input struct {
		BatchID       string  `json:"batchid"`
		CustomerID    string  `json:"customerid"`
		Weight        float64 `json:"weight"`
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"paymentmethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := config.Store.ProcessSale(input.BatchID, input.CustomerID, input.Weight, input.Amount, input.PaymentMethod)
	if err != nil {
		engineError(c, err)
		return
	}
	middleware.SalesProcessedTotal.WithLabelValues(result.Sale.PaymentMethod).Inc()

	notifications := []models.Notification{
		notify(models.SeveritySuccess, "Sale recorded for "+result.Batch.Name),
	}

	completed, err := config.Store.EvaluateMissions()
	if err == nil {
		for _, m := range completed {
			notifications = append(notifications, notify(models.SeverityInfo, "Mission complete: "+m.Title))
		}
	}

	if Realtime != nil {
		Realtime.Publish("sale", result.Sale)
		if result.Batch.SoldOut() {
			Realtime.Publish("batch_sold_out", result.Batch)
		}
	}
	publishInventory()

	c.JSON(http.StatusCreated, gin.H{
		"sale":          result.Sale,
		"batch":         result.Batch,
		"customer":      result.Customer,
		"notifications": notifications,
	})
}
