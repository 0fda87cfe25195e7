package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/models"
)

func GetExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, config.Store.Expenses())
}

func CreateExpense(c *gin.Context) {
	var input struct {
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := config.Store.AddExpense(input.Description, input.Category, input.Amount)
	if err != nil {
		engineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"expense":      expense,
		"notification": notify(models.SeveritySuccess, "Expense recorded"),
	})
}

// DeleteExpense removes the entry; the expected-cash figure follows on the
// next read since it is always derived fresh.
func DeleteExpense(c *gin.Context) {
	if err := config.Store.DeleteExpense(c.Param("id")); err != nil {
		engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notification": notify(models.SeveritySuccess, "Expense deleted"),
	})
}
