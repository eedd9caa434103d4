package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"handcrafted_gifts/internal/adapter/http/handlers"
	"handcrafted_gifts/internal/adapter/http/routes"
	"handcrafted_gifts/internal/adapter/messaging"
	"handcrafted_gifts/internal/adapter/persistence/repository"
	"handcrafted_gifts/internal/adapter/persistence/session"
	"handcrafted_gifts/internal/config"
	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/infrastructure/database"
	"handcrafted_gifts/internal/infrastructure/notify"
	"handcrafted_gifts/internal/infrastructure/payments"
	"handcrafted_gifts/internal/infrastructure/storage"
	"handcrafted_gifts/internal/logging"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// @title           Handcrafted Gifts API
// @version         1.0
// @description     Storefront, checkout and admin API for a handcrafted gifts shop.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[main] invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := database.NewAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("[main] aws config")
	}
	ddb := database.ConnectDynamoDB(awsCfg, cfg.DynamoDBEndpoint)

	rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("[main] redis unreachable")
	}
	defer rdb.Close()

	productRepo := repository.NewProductDynamoRepository(ddb, cfg.ProductsTable)
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable)
	orderNumbers := repository.NewOrderNumberDynamoGenerator(ddb, cfg.CountersTable)
	images := storage.NewS3ImageStore(storage.NewS3Client(awsCfg, cfg.S3Endpoint), cfg.S3Bucket, cfg.AWSRegion, cfg.S3PublicBaseURL)

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(payments.Options{
		AccessToken: cfg.MercadoPagoAccessToken,
		Mock:        cfg.PaymentGatewayMock,
		MockSecret:  cfg.PaymentMockSecret,
		SiteURL:     cfg.SiteURL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("[main] payment gateway not configured, online payments disabled")
	} else {
		gateway = mpGateway
	}

	notifier, closeNotifier := buildNotifier(cfg)
	defer closeNotifier()

	pricing := checkout.Pricing{
		GiftWrapFee:           decimal.NewFromFloat(cfg.GiftWrapFee),
		DeliveryFee:           decimal.NewFromFloat(cfg.DeliveryFee),
		FreeDeliveryThreshold: decimal.NewFromFloat(cfg.FreeDeliveryThreshold),
	}

	productUseCase := usecase.NewProductUseCase(productRepo, images)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, orderNumbers, gateway, notifier, usecase.OrderSettings{
		Pricing:               pricing,
		Currency:              cfg.PaymentCurrency,
		EstimatedDeliveryDays: cfg.EstimatedDeliveryDays,
	})
	checkoutUseCase := usecase.NewCheckoutUseCase(session.NewCheckoutRedisStore(rdb), productUseCase, orderUseCase, usecase.CheckoutSettings{
		Pricing:        pricing,
		Currency:       cfg.PaymentCurrency,
		SessionTTL:     cfg.CheckoutSessionTTL,
		WhatsAppNumber: cfg.WhatsAppBusinessNumber,
	})
	contactUseCase := usecase.NewContactUseCase(notifier)
	feed := usecase.NewOrderFeed(orderUseCase, cfg.AdminFeedInterval)

	h := routes.Handlers{
		Products:    handlers.NewProductHandler(productUseCase),
		Orders:      handlers.NewOrderHandler(orderUseCase),
		Checkout:    handlers.NewCheckoutHandler(checkoutUseCase),
		Contact:     handlers.NewContactHandler(contactUseCase),
		OrderStream: handlers.NewOrderStreamHandler(feed),
	}
	if cfg.PaymentGatewayMock {
		h.MockPayments = handlers.NewMockPaymentHandler(cfg.PaymentMockSecret)
	}
	if cfg.AdminAPIToken == "" {
		log.Warn().Msg("[main] ADMIN_API_TOKEN not set, admin API disabled")
	}
	router := routes.NewRouter(routes.Options{
		AdminToken:     cfg.AdminAPIToken,
		AllowedOrigins: cfg.CORSOrigins(),
		Swagger:        true,
	}, h)

	go feed.Run(ctx)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("[main] http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("[main] failed to start the application")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("[main] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("[main] graceful shutdown failed")
	}
}

// buildNotifier publishes to Kafka when brokers are configured, so a separate
// notifier worker delivers messages. Otherwise delivery happens in process.
func buildNotifier(cfg *config.Config) (interfaces.INotifier, func()) {
	brokers := cfg.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Info().Msg("[main] KAFKA_BROKERS empty, notifications delivered in process")
		return notify.NewDispatcherFromConfig(cfg), func() {}
	}
	k := messaging.NewKafkaNotifier(brokers, cfg.KafkaNotificationsTopic)
	log.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaNotificationsTopic).Msg("[main] notifications published to kafka")
	return k, func() {
		if err := k.Close(); err != nil {
			log.Warn().Err(err).Msg("[main] kafka writer close failed")
		}
	}
}
