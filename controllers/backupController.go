package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/engine"
	"backend/middleware"
	"backend/models"
	"backend/utils"
)

// ExportBackup streams the current state as a downloadable JSON document.
func ExportBackup(c *gin.Context) {
	doc := config.Store.ExportBackup()

	if err := config.ArchiveBackup(doc); err != nil {
		// Archive failure must not block the download.
		c.Header("X-Archive-Skipped", "true")
	}

	filename := fmt.Sprintf("backup_%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, doc)
}

// ImportBackup replaces the whole state with an uploaded document. A
// rejected document leaves current state untouched.
func ImportBackup(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	doc, err := engine.DecodeBackup(raw)
	if err != nil {
		middleware.BackupRestoresTotal.WithLabelValues("rejected").Inc()
		engineError(c, err)
		return
	}

	if err := config.Store.RestoreBackup(doc); err != nil {
		middleware.BackupRestoresTotal.WithLabelValues("rejected").Inc()
		engineError(c, err)
		return
	}
	middleware.BackupRestoresTotal.WithLabelValues("restored").Inc()

	c.JSON(http.StatusOK, gin.H{
		"notification": notify(models.SeveritySuccess, "Backup restored"),
	})
}

// EmailBackup mails the current backup document as an attachment.
func EmailBackup(c *gin.Context) {
	var input struct {
		To string `json:"to"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient email is required"})
		return
	}

	doc := config.Store.ExportBackup()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error encoding backup"})
		return
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("backup_%d.json", time.Now().Unix()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing backup file"})
		return
	}
	defer os.Remove(path)

	if err := utils.SendEmailAttachment(input.To, "Store backup", "Backup attached.", path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notification": notify(models.SeveritySuccess, "Backup sent to "+input.To),
	})
}
