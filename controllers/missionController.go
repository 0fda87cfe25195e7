package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/middleware"
	"backend/models"
)

func GetMissions(c *gin.Context) {
	c.JSON(http.StatusOK, config.Store.Missions())
}

func CreateMission(c *gin.Context) {
	var input struct {
		Title     string  `json:"title"`
		Metric    string  `json:"metric"`
		GoalValue float64 `json:"goalvalue"`
		RewardXP  int     `json:"rewardxp"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mission, err := config.Store.AddMission(input.Title, input.Metric, input.GoalValue, input.RewardXP)
	if err != nil {
		engineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mission":      mission,
		"notification": notify(models.SeveritySuccess, "Mission added"),
	})
}

// EvaluateMissions runs a manual evaluation pass. Sales already trigger one,
// this endpoint covers metrics that move without a sale.
func EvaluateMissions(c *gin.Context) {
	completed, err := config.Store.EvaluateMissions()
	if err != nil {
		engineError(c, err)
		return
	}

	notifications := []models.Notification{}
	for _, m := range completed {
		notifications = append(notifications, notify(models.SeverityInfo, "Mission complete: "+m.Title))
	}

	c.JSON(http.StatusOK, gin.H{
		"completed":     completed,
		"notifications": notifications,
	})
}

// ClaimMission pays out the reward at most once. Claiming an incomplete or
// already-claimed mission succeeds silently with no payout.
func ClaimMission(c *gin.Context) {
	reward, claimed, err := config.Store.ClaimMission(c.Param("id"))
	if err != nil {
		engineError(c, err)
		return
	}

	if !claimed {
		c.JSON(http.StatusOK, gin.H{"claimed": false})
		return
	}
	middleware.MissionClaimsTotal.Inc()

	c.JSON(http.StatusOK, gin.H{
		"claimed":      true,
		"rewardxp":     reward,
		"notification": notify(models.SeveritySuccess, "Reward claimed"),
	})
}
