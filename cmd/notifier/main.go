package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"handcrafted_gifts/internal/adapter/messaging"
	"handcrafted_gifts/internal/config"
	"handcrafted_gifts/internal/infrastructure/notify"
	"handcrafted_gifts/internal/logging"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// notifier consumes order and contact notifications from Kafka and delivers
// them over email and WhatsApp.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[notifier] invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	brokers := cfg.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Fatal().Msg("[notifier] KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := messaging.NewNotificationConsumer(brokers, cfg.KafkaNotificationsTopic, cfg.KafkaGroupID, notify.NewDispatcherFromConfig(cfg))
	defer consumer.Close()

	log.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaNotificationsTopic).Str("group", cfg.KafkaGroupID).Msg("[notifier] consuming")
	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("[notifier] consumer stopped")
		os.Exit(1)
	}
	log.Info().Msg("[notifier] stopped")
}
