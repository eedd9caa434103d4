package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is read from the environment (and .env, autoloaded by godotenv in
// the entry points). Every key has a default so local runs need no setup.
type Config struct {
	HTTPAddr           string        `mapstructure:"HTTP_ADDR"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogPretty          bool          `mapstructure:"LOG_PRETTY"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	AdminAPIToken      string        `mapstructure:"ADMIN_API_TOKEN"`

	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint   string `mapstructure:"DYNAMODB_ENDPOINT"`
	ProductsTable      string `mapstructure:"PRODUCTS_TABLE"`
	OrdersTable        string `mapstructure:"ORDERS_TABLE"`
	CountersTable      string `mapstructure:"COUNTERS_TABLE"`

	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`

	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	CheckoutSessionTTL time.Duration `mapstructure:"CHECKOUT_SESSION_TTL"`

	KafkaBrokers            string `mapstructure:"KAFKA_BROKERS"`
	KafkaNotificationsTopic string `mapstructure:"KAFKA_NOTIFICATIONS_TOPIC"`
	KafkaGroupID            string `mapstructure:"KAFKA_GROUP_ID"`

	MercadoPagoAccessToken string `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	PaymentGatewayMock     bool   `mapstructure:"PAYMENT_GATEWAY_MOCK"`
	PaymentMockSecret      string `mapstructure:"PAYMENT_MOCK_SECRET"`
	PaymentCurrency        string `mapstructure:"PAYMENT_CURRENCY"`
	SiteURL                string `mapstructure:"SITE_URL"`

	WhatsAppBusinessNumber string `mapstructure:"WHATSAPP_BUSINESS_NUMBER"`
	OwnerEmail             string `mapstructure:"OWNER_EMAIL"`
	SMTPHost               string `mapstructure:"SMTP_HOST"`
	SMTPPort               int    `mapstructure:"SMTP_PORT"`
	SMTPUsername           string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword           string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom               string `mapstructure:"SMTP_FROM"`
	TwilioAccountSID       string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken        string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom     string `mapstructure:"TWILIO_WHATSAPP_FROM"`

	GiftWrapFee           float64       `mapstructure:"GIFT_WRAP_FEE"`
	DeliveryFee           float64       `mapstructure:"DELIVERY_FEE"`
	FreeDeliveryThreshold float64       `mapstructure:"FREE_DELIVERY_THRESHOLD"`
	EstimatedDeliveryDays int           `mapstructure:"ESTIMATED_DELIVERY_DAYS"`
	AdminFeedInterval     time.Duration `mapstructure:"ADMIN_FEED_INTERVAL"`
}

var defaults = map[string]any{
	"HTTP_ADDR":            ":8080",
	"SHUTDOWN_TIMEOUT":     "10s",
	"LOG_LEVEL":            "info",
	"LOG_PRETTY":           false,
	"CORS_ALLOWED_ORIGINS": "*",
	"ADMIN_API_TOKEN":      "",

	"AWS_REGION":            "us-east-1",
	"AWS_ACCESS_KEY_ID":     "local",
	"AWS_SECRET_ACCESS_KEY": "local",
	"DYNAMODB_ENDPOINT":     "",
	"PRODUCTS_TABLE":        "products",
	"ORDERS_TABLE":          "orders",
	"COUNTERS_TABLE":        "counters",

	"S3_BUCKET":          "handcrafted-gifts-images",
	"S3_ENDPOINT":        "",
	"S3_PUBLIC_BASE_URL": "",

	"REDIS_ADDR":           "localhost:6379",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"CHECKOUT_SESSION_TTL": "2h",

	"KAFKA_BROKERS":             "",
	"KAFKA_NOTIFICATIONS_TOPIC": "order-notifications",
	"KAFKA_GROUP_ID":            "handcrafted-gifts-notifier",

	"MERCADOPAGO_ACCESS_TOKEN": "",
	"PAYMENT_GATEWAY_MOCK":     false,
	"PAYMENT_MOCK_SECRET":      "local-mock-secret",
	"PAYMENT_CURRENCY":         "INR",
	"SITE_URL":                 "http://localhost:3000",

	"WHATSAPP_BUSINESS_NUMBER": "",
	"OWNER_EMAIL":              "",
	"SMTP_HOST":                "",
	"SMTP_PORT":                587,
	"SMTP_USERNAME":            "",
	"SMTP_PASSWORD":            "",
	"SMTP_FROM":                "",
	"TWILIO_ACCOUNT_SID":       "",
	"TWILIO_AUTH_TOKEN":        "",
	"TWILIO_WHATSAPP_FROM":     "",

	"GIFT_WRAP_FEE":           50,
	"DELIVERY_FEE":            50,
	"FREE_DELIVERY_THRESHOLD": 500,
	"ESTIMATED_DELIVERY_DAYS": 7,
	"ADMIN_FEED_INTERVAL":     "5s",
}

// Load builds a Config from the process environment.
func Load() (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.PaymentGatewayMock && strings.TrimSpace(cfg.PaymentMockSecret) == "" {
		return nil, fmt.Errorf("PAYMENT_MOCK_SECRET is required when PAYMENT_GATEWAY_MOCK is enabled")
	}
	return cfg, nil
}

func (c *Config) KafkaBrokerList() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func (c *Config) WhatsAppEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
