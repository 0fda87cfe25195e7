package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"backend/api"
	"backend/config"
	"backend/controllers"
	"backend/engine"
	"backend/middleware"
	"backend/routes"
	"backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger := utils.MustLogger(utils.NewLogger())
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("FRONTEND_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	config.ConnectDatabase()

	config.Store = engine.New()
	config.LoadSnapshot(config.Store, logger)
	config.Store.SetOnChange(func(snap engine.Snapshot) {
		config.SaveSnapshot(engine.BackupFromSnapshot(snap, time.Now()), logger)
	})

	if err := controllers.InitObjectStorage(); err != nil {
		logger.Warn("object storage unavailable", zap.Error(err))
	}
	controllers.Briefing = api.NewBriefingClient()
	controllers.Realtime = api.NewBroadcaster(logger)

	tz := os.Getenv("TZ_NAME")
	if tz == "" {
		tz = "UTC"
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		logger.Fatal("bad timezone", zap.String("tz", tz), zap.Error(err))
	}
	s := gocron.NewScheduler(location)
	s.Every(1).Day().At("01:01").Do(func() { utils.RunDailyBackup(logger) })
	s.StartAsync()

	routes.InitializeRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "1414"
	}
	logger.Info("listening", zap.String("port", port))
	r.Run(":" + port)
}
