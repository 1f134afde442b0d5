package main

import (
	"context"
	stderrors "errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loadboard/adapters/api"
	"loadboard/adapters/excel"
	"loadboard/app"
	"loadboard/internal"
	"loadboard/internal/cache"
	"loadboard/internal/config"
	"loadboard/internal/dataset"
	"loadboard/internal/errors"
	"loadboard/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(appConfig.Logging.Level))
	gin.SetMode(appConfig.Server.GinMode)

	storageConfig := dataset.DefaultStorageConfig()
	storageConfig.BasePath = appConfig.Data.UploadDir
	storageConfig.MaxFileSize = appConfig.Data.MaxUploadBytes()

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.SheetName = appConfig.Data.SheetName

	dashboard := app.NewDashboardService(
		cache.New(appConfig.Data.CacheEntries),
		dataset.NewLocalFileStorage(storageConfig),
		app.DashboardConfig{
			ScheduleFile:   appConfig.Data.ScheduleFile,
			Reader:         readerConfig,
			TopN:           appConfig.Dashboard.TopN,
			MaxUploadBytes: appConfig.Data.MaxUploadBytes(),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dashboard.Start(ctx); err != nil {
		if !errors.Is(err, errors.CodeNoData) {
			log.Fatalf("Failed to load schedule: %v", err)
		}
		internal.DefaultLogger.Warn("No schedule loaded (%v); the dashboard will ask for an upload", err)
	}

	server, err := ui.NewServer(dashboard, api.NewRouter(dashboard), appConfig.Data.MaxUploadBytes())
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  appConfig.Server.ReadTimeout,
		WriteTimeout: appConfig.Server.WriteTimeout,
	}

	go func() {
		internal.DefaultLogger.Info("Starting loadboard on http://localhost:%s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	internal.DefaultLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		internal.DefaultLogger.Error("Graceful shutdown failed: %v", err)
	}
}
