package database

import (
	"context"

	appconfig "handcrafted_gifts/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog/log"
)

// NewAWSConfig loads the shared AWS configuration.
//
// Static credentials are always set: local DynamoDB and MinIO do not validate
// them, but the SDK requires some.
func NewAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")
	return config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(creds),
	)
}

// ConnectDynamoDB creates a DynamoDB client. DYNAMODB_ENDPOINT (e.g.
// http://dynamodb:8000) points it at a local instance.
func ConnectDynamoDB(awsCfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			log.Info().Str("endpoint", endpoint).Msg("[database][dynamodb] using custom endpoint")
		}
	})
}
