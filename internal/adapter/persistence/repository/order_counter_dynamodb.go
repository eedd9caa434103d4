package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCountersTableName = "counters"
	orderNumberPrefix        = "HG"
)

// OrderNumberDynamoGenerator issues order numbers of the form HG<yyMMdd><seq>,
// where seq is a per-day atomic counter kept in the counters table.
//
// Table requirements:
//   - PK: id (string)
type OrderNumberDynamoGenerator struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOrderNumberGenerator = (*OrderNumberDynamoGenerator)(nil)

func NewOrderNumberDynamoGenerator(ddb DynamoAPI, tableName string) *OrderNumberDynamoGenerator {
	return &OrderNumberDynamoGenerator{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultCountersTableName),
	}
}

func (g *OrderNumberDynamoGenerator) Next(ctx context.Context, at time.Time) (string, error) {
	day := at.Format("060102")
	out, err := g.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(g.tableName),
		Key:              idKey("order_number#" + day),
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return "", err
	}

	raw, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("order counter %s: missing seq attribute", day)
	}
	seq, err := strconv.Atoi(raw.Value)
	if err != nil {
		return "", fmt.Errorf("order counter %s: %w", day, err)
	}
	return fmt.Sprintf("%s%s%04d", orderNumberPrefix, day, seq), nil
}
