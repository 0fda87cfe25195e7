package controllers

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"backend/config"
	"backend/models"
	"backend/utils"
)

func Login(c *gin.Context) {
	var input models.User
	var foundUser models.User

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := config.UserCollection.FindOne(ctx, bson.M{"phone": input.Phone}).Decode(&foundUser)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect Phone number", "phone": input.Phone})
		return
	}

	err = utils.VerifyPassword(foundUser.Password, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect Password"})
		return
	}

	token, err := utils.GenerateToken(foundUser.ID.Hex(), foundUser.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while generating token"})
		return
	}

	session := models.Session{
		UserID:    foundUser.ID,
		Role:      foundUser.Role,
		IP:        getClientIP(c),
		Device:    c.Request.UserAgent(),
		Timestamp: time.Now(),
	}
	_, err = config.SessionCollection.InsertOne(ctx, session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording session"})
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"userID":   foundUser.ID.Hex(),
		"role":     foundUser.Role,
		"fullName": foundUser.FirstName + " " + foundUser.LastName,
	})
}

func getClientIP(c *gin.Context) string {
	ip := c.Request.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.ClientIP()
	}
	return ip
}

// Register creates an operator or manager account. Manager-only route.
func Register(c *gin.Context) {
	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Phone == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone and password are required"})
		return
	}
	if input.Role != "manager" && input.Role != "operator" {
		input.Role = "operator"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.UserCollection.CountDocuments(ctx, bson.M{"phone": input.Phone})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing users"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}
	input.Password = hashed

	res, err := config.UserCollection.InsertOne(ctx, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           res.InsertedID,
		"notification": notify(models.SeveritySuccess, "User created"),
	})
}

// ForgotPassword mails a short-lived recovery code to the account's email.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		// Same response either way, the endpoint must not leak which
		// emails exist.
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a code was sent"})
		return
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	_, err = config.UserCollection.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"recovery_code":    code,
		"recovery_expires": time.Now().Add(15 * time.Minute),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing recovery code"})
		return
	}

	if err := utils.SendEmail(user.Email, "Password recovery", "Your recovery code: "+code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a code was sent"})
}

func ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Email == "" || input.Code == "" || input.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, code and new password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{
		"email":            input.Email,
		"recovery_code":    input.Code,
		"recovery_expires": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired recovery code"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	_, err = config.UserCollection.UpdateByID(ctx, user.ID, bson.M{
		"$set":   bson.M{"password": hashed},
		"$unset": bson.M{"recovery_code": "", "recovery_expires": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notify(models.SeveritySuccess, "Password updated")})
}

func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
