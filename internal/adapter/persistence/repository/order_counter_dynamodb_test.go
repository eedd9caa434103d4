package repository

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestOrderNumberDynamoGenerator_Next(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.updateOut = &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
		"seq": &types.AttributeValueMemberN{Value: "12"},
	}}
	gen := NewOrderNumberDynamoGenerator(ddb, "")

	got, err := gen.Next(context.Background(), time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "HG2610160012" {
		t.Fatalf("unexpected order number %q", got)
	}

	key := ddb.lastUpdate.Key["id"].(*types.AttributeValueMemberS)
	if key.Value != "order_number#261016" {
		t.Fatalf("unexpected counter key %q", key.Value)
	}
	if aws.ToString(ddb.lastUpdate.UpdateExpression) != "ADD #seq :one" {
		t.Fatalf("unexpected expression %q", aws.ToString(ddb.lastUpdate.UpdateExpression))
	}
}

func TestOrderNumberDynamoGenerator_MissingSeq(t *testing.T) {
	ddb := newFakeDynamo()
	gen := NewOrderNumberDynamoGenerator(ddb, "counters")

	if _, err := gen.Next(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected error when counter attribute is missing")
	}
}
