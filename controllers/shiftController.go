package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/models"
)

func GetShift(c *gin.Context) {
	c.JSON(http.StatusOK, config.Store.Shift())
}

func OpenShift(c *gin.Context) {
	var input struct {
		OpeningFloat float64 `json:"openingfloat"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.Store.OpenShift(input.OpeningFloat); err != nil {
		engineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shift":        config.Store.Shift(),
		"notification": notify(models.SeveritySuccess, "Shift opened"),
	})
}

// BeginCount freezes the expected-cash figure so the operator counts
// against a stable number.
func BeginCount(c *gin.Context) {
	expected, err := config.Store.BeginCount()
	if err != nil {
		engineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expectedcash": expected,
		"shift":        config.Store.Shift(),
	})
}

func SubmitCount(c *gin.Context) {
	var input struct {
		CountedCash float64 `json:"countedcash"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variance, err := config.Store.SubmitCount(input.CountedCash)
	if err != nil {
		engineError(c, err)
		return
	}

	severity := models.SeveritySuccess
	if variance != 0 {
		severity = models.SeverityWarning
	}
	c.JSON(http.StatusOK, gin.H{
		"variance":     variance,
		"shift":        config.Store.Shift(),
		"notification": notify(severity, fmt.Sprintf("Count recorded, variance %.2f", variance)),
	})
}

func CloseShift(c *gin.Context) {
	if err := config.Store.CloseShift(); err != nil {
		engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shift":        config.Store.Shift(),
		"notification": notify(models.SeveritySuccess, "Shift closed"),
	})
}

// ReopenShift is the manager override for a shift closed by mistake. The
// submitted count is discarded.
func ReopenShift(c *gin.Context) {
	if err := config.Store.ReopenShift(); err != nil {
		engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shift":        config.Store.Shift(),
		"notification": notify(models.SeverityWarning, "Shift reopened, previous count discarded"),
	})
}

func EndShift(c *gin.Context) {
	if err := config.Store.EndShift(); err != nil {
		engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shift":        config.Store.Shift(),
		"notification": notify(models.SeveritySuccess, "Shift ended"),
	})
}
