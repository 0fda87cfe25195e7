package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/config"
)

func GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, config.Store.Dashboard())
}
