package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenzone/controllers"
	"zenzone/websocket"
)

// SetupAnalysisRoutes wires the stress analysis endpoints.
func SetupAnalysisRoutes(router *gin.Engine) {
	router.POST("/analyze", controllers.AnalyzeRecording)
	router.GET("/sessions", controllers.GetSessions)
	router.GET("/ws/live", websocket.LiveAnalysisHandler)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
