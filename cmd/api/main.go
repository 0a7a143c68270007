package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arabianlink/contact-api/internal/config"
	"github.com/arabianlink/contact-api/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.Logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	app := server.New(cfg, client)
	if err := app.EnsureIndexes(ctx, cfg); err != nil {
		cfg.Logger.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	if err := app.Run(); err != nil {
		cfg.Logger.Fatal().Err(err).Msg("server failed to start")
	}
}
