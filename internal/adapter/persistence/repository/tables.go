package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// TableAdmin is the part of the DynamoDB client used to bootstrap tables.
type TableAdmin interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

var _ TableAdmin = (*dynamodb.Client)(nil)

type TableNames struct {
	Products string
	Orders   string
	Counters string
}

// TableDefinitions returns the schema of every table the repositories use.
// All tables are keyed by a string "id" and billed on demand.
func TableDefinitions(names TableNames) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		idTable(tableOrDefault(names.Products, defaultProductsTableName)),
		ordersTable(tableOrDefault(names.Orders, defaultOrdersTableName)),
		idTable(tableOrDefault(names.Counters, defaultCountersTableName)),
	}
}

// EnsureTables creates missing tables and waits until each one is active.
// Existing tables are left untouched.
func EnsureTables(ctx context.Context, admin TableAdmin, names TableNames, wait time.Duration) error {
	waiter := dynamodb.NewTableExistsWaiter(admin)
	for _, def := range TableDefinitions(names) {
		name := aws.ToString(def.TableName)
		_, err := admin.CreateTable(ctx, def)
		var inUse *types.ResourceInUseException
		switch {
		case errors.As(err, &inUse):
			log.Info().Str("table", name).Msg("[dynamodb][tables] already exists")
			continue
		case err != nil:
			return fmt.Errorf("create table %s: %w", name, err)
		}
		log.Info().Str("table", name).Msg("[dynamodb][tables] created")

		if wait <= 0 {
			continue
		}
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName}, wait); err != nil {
			return fmt.Errorf("wait for table %s: %w", name, err)
		}
	}
	return nil
}

func idTable(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}

func ordersTable(name string) *dynamodb.CreateTableInput {
	in := idTable(name)
	in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
		AttributeName: aws.String("order_number"),
		AttributeType: types.ScalarAttributeTypeS,
	})
	in.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
		IndexName: aws.String(ordersNumberIndex),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("order_number"), KeyType: types.KeyTypeHash},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}
	return in
}
