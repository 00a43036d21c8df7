package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-cms/inkwell/blog/application"
	"github.com/inkwell-cms/inkwell/blog/persistence"
	"github.com/inkwell-cms/inkwell/internal/config"
	"github.com/inkwell-cms/inkwell/internal/middleware"
	"github.com/inkwell-cms/inkwell/internal/rest"
	"github.com/inkwell-cms/inkwell/shared/cloudinary"
	"github.com/inkwell-cms/inkwell/shared/db"
	"github.com/inkwell-cms/inkwell/shared/db/sqlite"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.FromEnv()

	var database db.Database = sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: cfg.DBPath})
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	if err := cfg.ValidateImageStore(); err != nil {
		log.Fatal().Err(err).Msg("Image store is not configured")
	}
	images, err := cloudinary.NewImageStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create image store client")
	}

	postRepo := persistence.NewPostRepository(database.DB())
	postService := application.NewPostService(postRepo, images)

	gin.SetMode(gin.ReleaseMode)
	service := gin.New()
	service.Use(middleware.LoggingMiddleware())
	service.Use(gin.CustomRecovery(middleware.HandlePanics()))

	rest.RegisterRoutes(service, rest.NewHandler(postService, cfg))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: service,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
