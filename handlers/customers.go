package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/controllers"
	"backend/engine"
	"backend/models"
)

func GetCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, config.Store.Customers())
}

func GetCustomer(c *gin.Context) {
	customer, err := config.Store.GetCustomer(c.Param("id"))
	if err != nil {
		customerError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetCustomerHistory returns just the purchase list, oldest first.
func GetCustomerHistory(c *gin.Context) {
	customer, err := config.Store.GetCustomer(c.Param("id"))
	if err != nil {
		customerError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer.History)
}

func CreateCustomer(c *gin.Context) {
	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := config.Store.AddCustomer(input.Name, input.Phone)
	if err != nil {
		customerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"customer": customer,
		"notification": models.Notification{
			Severity: models.SeveritySuccess,
			Message:  "Customer " + customer.Name + " added",
		},
	})
}

func UpdateCustomer(c *gin.Context) {
	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := config.Store.UpdateCustomer(c.Param("id"), input.Name, input.Phone)
	if err != nil {
		customerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"notification": models.Notification{
			Severity: models.SeveritySuccess,
			Message:  "Customer updated",
		},
	})
}

func DeleteCustomer(c *gin.Context) {
	if err := config.Store.DeleteCustomer(c.Param("id")); err != nil {
		customerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notification": models.Notification{
			Severity: models.SeveritySuccess,
			Message:  "Customer deleted",
		},
	})
}

// UploadCustomerAvatar stores a photo in object storage and links the CDN
// URL to the customer.
func UploadCustomerAvatar(c *gin.Context) {
	id := c.Param("id")
	if _, err := config.Store.GetCustomer(id); err != nil {
		customerError(c, err)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}

	url, err := controllers.SaveAvatarToS3(file, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := config.Store.SetCustomerAvatar(id, url); err != nil {
		customerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarurl": url})
}

func customerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
