package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/engine"
	"backend/models"
)

func GetBatches(c *gin.Context) {
	c.JSON(http.StatusOK, config.Store.Batches())
}

func GetBatch(c *gin.Context) {
	batch, err := config.Store.GetBatch(c.Param("id"))
	if err != nil {
		engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func CreateBatch(c *gin.Context) {
	var input engine.BatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := config.Store.AddBatch(input)
	if err != nil {
		engineError(c, err)
		return
	}
	publishInventory()

	c.JSON(http.StatusCreated, gin.H{
		"batch":        batch,
		"notification": notify(models.SeveritySuccess, "Batch "+batch.Name+" added"),
	})
}

func UpdateBatch(c *gin.Context) {
	var input engine.BatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := config.Store.UpdateBatch(c.Param("id"), input)
	if err != nil {
		engineError(c, err)
		return
	}
	publishInventory()

	c.JSON(http.StatusOK, gin.H{
		"batch":        batch,
		"notification": notify(models.SeveritySuccess, "Batch updated"),
	})
}

// RecordAdjustment books extra personal use or loss against a batch after
// intake. Cost per unit goes up, stock goes down.
func RecordAdjustment(c *gin.Context) {
	var input struct {
		PersonalUse float64 `json:"personaluse"`
		Loss        float64 `json:"loss"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := config.Store.RecordAdjustment(c.Param("id"), input.PersonalUse, input.Loss)
	if err != nil {
		engineError(c, err)
		return
	}
	publishInventory()

	c.JSON(http.StatusOK, gin.H{
		"batch":        batch,
		"notification": notify(models.SeverityWarning, "Adjustment recorded for "+batch.Name),
	})
}

func AddBatchExpense(c *gin.Context) {
	var input struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := config.Store.AddBatchExpense(c.Param("id"), input.Description, input.Amount)
	if err != nil {
		engineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch":        batch,
		"notification": notify(models.SeveritySuccess, "Expense added to "+batch.Name),
	})
}

func RemoveBatchExpense(c *gin.Context) {
	batch, err := config.Store.RemoveBatchExpense(c.Param("id"), c.Param("expenseId"))
	if err != nil {
		engineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch":        batch,
		"notification": notify(models.SeveritySuccess, "Expense removed"),
	})
}

func DeleteBatch(c *gin.Context) {
	if err := config.Store.DeleteBatch(c.Param("id")); err != nil {
		engineError(c, err)
		return
	}
	publishInventory()
	c.JSON(http.StatusOK, gin.H{
		"notification": notify(models.SeveritySuccess, "Batch deleted"),
	})
}

// publishInventory pushes the full batch list to the realtime channel so
// open dashboards refresh stock figures without polling.
func publishInventory() {
	if Realtime != nil {
		Realtime.Publish("inventory", config.Store.Batches())
	}
}
