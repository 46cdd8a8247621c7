// File: realfun/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realfun/config"
	"realfun/database"
	historyRepo "realfun/database/repository/history"
	"realfun/handlers"
	"realfun/middleware"
	"realfun/routes"
	"realfun/services/copilot"
	"realfun/services/jamai"
	"realfun/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	histRepo := historyRepo.NewMongoHistoryRepo()
	if err := histRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Warnf("main: failed to ensure copilot record indexes: %v", err)
	}

	// services.
	tableClient := jamai.NewClient(jamai.ClientConfig{
		BaseURL:   config.AppConfig.JamaiBaseURL,
		ProjectID: config.AppConfig.JamaiProjectID,
		Token:     config.AppConfig.JamaiPAT,
		TableID:   config.AppConfig.JamaiActionTableID,
		Timeout:   time.Duration(config.AppConfig.JamaiTimeoutSecs) * time.Second,
	})
	sessionStore := copilot.NewSessionStore(utils.GetSessionCacheClient())
	copilotService := &copilot.DefaultCopilotService{
		TableClient: tableClient,
		Sessions:    sessionStore,
		HistoryRepo: histRepo,
	}

	copilotHandler := &handlers.CopilotHandler{Service: copilotService}
	historyHandler := &handlers.HistoryHandler{Repo: histRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Copilot endpoints.
		GenerateHandler:        copilotHandler.GenerateHandler,
		SessionResponseHandler: copilotHandler.SessionResponseHandler,
		TranscribeHandler:      handlers.TranscribeVoiceNoteHandler,

		// History endpoints.
		ListHistoryHandler:   historyHandler.ListHandler,
		GetHistoryHandler:    historyHandler.GetHandler,
		DeleteHistoryHandler: historyHandler.DeleteHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
