package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"zenzone/services"
	"zenzone/utils"
)

// AnalyzeRecording handles the multipart upload from the recorder UI, runs
// the scoring pipeline and returns the fused result.
func AnalyzeRecording(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file uploaded"})
		return
	}
	if file.Filename == "" && file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	svc := services.GetAnalysisService()

	path := utils.TempAudioPath(svc.UploadDir(), file.Filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		log.Printf("Failed to save uploaded audio: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save audio file"})
		return
	}
	defer utils.RemoveQuietly(path)

	userID := c.GetHeader("X-User-Id")

	result := svc.AnalyzeRecording(c.Request.Context(), path, userID)
	c.JSON(http.StatusOK, result)
}
