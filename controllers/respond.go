package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/engine"
	"backend/models"
)

func notify(severity, message string) models.Notification {
	return models.Notification{Severity: severity, Message: message}
}

// engineError maps engine failures onto HTTP statuses and a notification
// the dashboard can render directly.
func engineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        err.Error(),
			"notification": notify(models.SeverityError, err.Error()),
		})
	case errors.Is(err, engine.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{
			"error":        err.Error(),
			"notification": notify(models.SeverityWarning, err.Error()),
		})
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":        err.Error(),
			"notification": notify(models.SeverityError, err.Error()),
		})
	case errors.Is(err, engine.ErrCorruptBackup):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        err.Error(),
			"notification": notify(models.SeverityError, err.Error()),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"notification": notify(models.SeverityError, "Something went wrong"),
		})
	}
}
