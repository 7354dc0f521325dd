package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zenzone/db"
	"zenzone/models"
)

// GetSessions returns the caller's most recent analysis sessions.
func GetSessions(c *gin.Context) {
	userID := c.GetHeader("X-User-Id")
	if userID == "" {
		userID = "anonymous"
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	sessions, err := db.GetRecentSessions(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
