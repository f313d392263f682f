package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimikegami/bulknest-server/config"
	"github.com/alimikegami/bulknest-server/internal/app"
	"github.com/alimikegami/bulknest-server/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/bulknest-server/internal/repository"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	cfg := config.CreateNewConfig()
	if cfg.Environment == "development" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	var db *mongo.Database
	if cfg.DBDriver == config.DriverMongoDB {
		var err error
		db, err = mongodb.ConnectToMongoDB(cfg.MongoDBConfig.ConnectionURI(), cfg.MongoDBConfig.DBName)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer db.Client().Disconnect(context.Background())

		if err := repository.EnsureIndexes(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("Failed to create indexes")
		}
	}

	server := app.App{
		DB:     db,
		Config: cfg,
	}

	if _, err := server.Build(); err != nil {
		log.Fatal().Err(err).Msg("Failed to build server")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	done := make(chan error, 1)
	go func() { done <- server.StopServer() }()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	case <-time.After(15 * time.Second):
		log.Error().Msg("Shutdown timed out")
	}
}
