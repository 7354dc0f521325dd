package main

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"zenzone/config"
	"zenzone/db"
	"zenzone/routes"
	"zenzone/services"
)

func main() {
	configPath := os.Getenv("ZEN_CONFIG")
	if configPath == "" {
		configPath = "./config/config.yml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	services.InitAnalysisService(cfg)

	// Session history needs Mongo; analysis itself does not. Run degraded
	// rather than refusing to start when the database is down.
	if cfg.Database.URI != "" {
		if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
			log.Printf("MongoDB unavailable, sessions will not be persisted: %v", err)
		} else {
			log.Println("Connected to MongoDB")
		}
	} else {
		log.Println("No database configured, sessions will not be persisted")
	}

	if cfg.Audio.UploadDir != "" {
		os.MkdirAll(cfg.Audio.UploadDir, os.ModePerm)
	}

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	routes.SetupAnalysisRoutes(router)

	return router
}
