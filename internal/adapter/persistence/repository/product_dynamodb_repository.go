package repository

import (
	"context"
	"sort"
	"strings"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultProductsTableName = "products"

type productOptionsItem struct {
	Colors    []string `dynamodbav:"colors,omitempty"`
	Sizes     []string `dynamodbav:"sizes,omitempty"`
	SizeUnit  string   `dynamodbav:"size_unit,omitempty"`
	Materials []string `dynamodbav:"materials,omitempty"`
}

type productItem struct {
	ID           string             `dynamodbav:"id"`
	Name         string             `dynamodbav:"name"`
	Category     string             `dynamodbav:"category"`
	Description  string             `dynamodbav:"description"`
	BasePrice    string             `dynamodbav:"base_price"`
	Images       []string           `dynamodbav:"images,omitempty"`
	Customizable bool               `dynamodbav:"customizable"`
	Options      productOptionsItem `dynamodbav:"options"`
	InStock      bool               `dynamodbav:"in_stock"`
	Featured     bool               `dynamodbav:"featured"`
	CreatedAt    string             `dynamodbav:"created_at"`
	UpdatedAt    string             `dynamodbav:"updated_at"`
}

// ProductDynamoRepository persists Product entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The catalog is small, listings are a filtered Scan sorted newest first.
type ProductDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProductRepository = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb DynamoAPI, tableName string) *ProductDynamoRepository {
	return &ProductDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultProductsTableName),
	}
}

func (r *ProductDynamoRepository) Create(ctx context.Context, p entities.Product) (entities.Product, error) {
	av, err := attributevalue.MarshalMap(toProductItem(p))
	if err != nil {
		return entities.Product{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Product{}, err
	}
	return p, nil
}

func (r *ProductDynamoRepository) GetByID(ctx context.Context, id string) (entities.Product, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Product{}, err
	}
	if len(out.Item) == 0 {
		return entities.Product{}, nil
	}

	var it productItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Product{}, err
	}
	return fromProductItem(it), nil
}

func (r *ProductDynamoRepository) List(ctx context.Context, filter interfaces.ProductFilter) ([]entities.Product, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	if filter.Category != "" {
		conds = append(conds, "#category = :category")
		names["#category"] = "category"
		values[":category"] = &types.AttributeValueMemberS{Value: string(filter.Category)}
	}
	if filter.FeaturedOnly {
		conds = append(conds, "#featured = :true")
		names["#featured"] = "featured"
		values[":true"] = &types.AttributeValueMemberBOOL{Value: true}
	}
	if !filter.IncludeOutOfStock {
		conds = append(conds, "#in_stock = :true")
		names["#in_stock"] = "in_stock"
		values[":true"] = &types.AttributeValueMemberBOOL{Value: true}
	}
	if len(conds) > 0 {
		in.FilterExpression = aws.String(strings.Join(conds, " AND "))
		in.ExpressionAttributeNames = names
		in.ExpressionAttributeValues = values
	}

	products := make([]entities.Product, 0)
	pages := dynamodb.NewScanPaginator(r.ddb, in)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it productItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			products = append(products, fromProductItem(it))
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

// Update replaces the whole item. It returns the zero value when the product
// does not exist.
func (r *ProductDynamoRepository) Update(ctx context.Context, p entities.Product) (entities.Product, error) {
	av, err := attributevalue.MarshalMap(toProductItem(p))
	if err != nil {
		return entities.Product{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Product{}, nil
		}
		return entities.Product{}, err
	}
	return p, nil
}

func (r *ProductDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

func toProductItem(p entities.Product) productItem {
	return productItem{
		ID:           p.ID,
		Name:         p.Name,
		Category:     string(p.Category),
		Description:  p.Description,
		BasePrice:    p.BasePrice.String(),
		Images:       p.Images,
		Customizable: p.Customizable,
		Options: productOptionsItem{
			Colors:    p.Options.Colors,
			Sizes:     p.Options.Sizes,
			SizeUnit:  string(p.Options.SizeUnit),
			Materials: p.Options.Materials,
		},
		InStock:   p.InStock,
		Featured:  p.Featured,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func fromProductItem(it productItem) entities.Product {
	price, _ := decimal.NewFromString(it.BasePrice)
	return entities.Product{
		ID:           it.ID,
		Name:         it.Name,
		Category:     entities.Category(it.Category),
		Description:  it.Description,
		BasePrice:    price,
		Images:       it.Images,
		Customizable: it.Customizable,
		Options: entities.ProductOptions{
			Colors:    it.Options.Colors,
			Sizes:     it.Options.Sizes,
			SizeUnit:  entities.SizeUnit(it.Options.SizeUnit),
			Materials: it.Options.Materials,
		},
		InStock:   it.InStock,
		Featured:  it.Featured,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
