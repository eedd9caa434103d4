package main

import (
	"context"
	"time"

	"handcrafted_gifts/internal/adapter/persistence/repository"
	"handcrafted_gifts/internal/config"
	"handcrafted_gifts/internal/infrastructure/database"
	"handcrafted_gifts/internal/logging"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// tables creates the DynamoDB tables the API expects. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[tables] invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	awsCfg, err := database.NewAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("[tables] aws config")
	}
	ddb := database.ConnectDynamoDB(awsCfg, cfg.DynamoDBEndpoint)

	names := repository.TableNames{
		Products: cfg.ProductsTable,
		Orders:   cfg.OrdersTable,
		Counters: cfg.CountersTable,
	}
	if err := repository.EnsureTables(ctx, ddb, names, 2*time.Minute); err != nil {
		log.Fatal().Err(err).Msg("[tables] bootstrap failed")
	}
	log.Info().Msg("[tables] done")
}
