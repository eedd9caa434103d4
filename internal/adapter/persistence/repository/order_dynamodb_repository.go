package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultOrdersTableName = "orders"
	ordersNumberIndex      = "order_number-index"
)

type addressItem struct {
	Street     string `dynamodbav:"street"`
	City       string `dynamodbav:"city"`
	State      string `dynamodbav:"state"`
	PostalCode string `dynamodbav:"postal_code"`
}

type customerItem struct {
	Name           string      `dynamodbav:"name"`
	Email          string      `dynamodbav:"email,omitempty"`
	Phone          string      `dynamodbav:"phone"`
	WhatsAppNumber string      `dynamodbav:"whatsapp_number"`
	Address        addressItem `dynamodbav:"address"`
}

type customizationItem struct {
	Text                string `dynamodbav:"text,omitempty"`
	Color               string `dynamodbav:"color,omitempty"`
	Size                string `dynamodbav:"size,omitempty"`
	Material            string `dynamodbav:"material,omitempty"`
	SpecialInstructions string `dynamodbav:"special_instructions,omitempty"`
}

type orderLineItem struct {
	ProductID     string            `dynamodbav:"product_id"`
	ProductName   string            `dynamodbav:"product_name"`
	ProductImage  string            `dynamodbav:"product_image,omitempty"`
	Price         string            `dynamodbav:"price"`
	Quantity      int               `dynamodbav:"quantity"`
	Customization customizationItem `dynamodbav:"customization"`
}

type orderItem struct {
	ID                 string          `dynamodbav:"id"`
	OrderNumber        string          `dynamodbav:"order_number"`
	Customer           customerItem    `dynamodbav:"customer"`
	Items              []orderLineItem `dynamodbav:"items"`
	GiftWrap           bool            `dynamodbav:"gift_wrap"`
	TotalAmount        string          `dynamodbav:"total_amount"`
	Currency           string          `dynamodbav:"currency"`
	Status             string          `dynamodbav:"status"`
	PaymentStatus      string          `dynamodbav:"payment_status"`
	PaymentMethod      string          `dynamodbav:"payment_method"`
	PaymentSessionID   string          `dynamodbav:"payment_session_id,omitempty"`
	PaymentCheckoutURL string          `dynamodbav:"payment_checkout_url,omitempty"`
	PaymentID          string          `dynamodbav:"payment_id,omitempty"`
	Notes              string          `dynamodbav:"notes,omitempty"`
	EstimatedDelivery  string          `dynamodbav:"estimated_delivery,omitempty"`
	CreatedAt          string          `dynamodbav:"created_at"`
	UpdatedAt          string          `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_number-index (PK: order_number)
type OrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultOrdersTableName),
		now:       time.Now,
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
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
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersNumberIndex),
		KeyConditionExpression: aws.String("order_number = :num"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":num": &types.AttributeValueMemberS{Value: orderNumber},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

// List returns every order, newest first.
func (r *OrderDynamoRepository) List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if filter.Status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(filter.Status)},
		}
	}

	orders := make([]entities.Order, 0)
	pages := dynamodb.NewScanPaginator(r.ddb, in)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderItem(it))
		}
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Update applies the non-nil fields of u. It returns the zero value when the
// order does not exist.
func (r *OrderDynamoRepository) Update(ctx context.Context, id string, u interfaces.OrderUpdate) (entities.Order, error) {
	now := formatTime(r.now())
	sets := []string{"#updated_at = :updated_at"}
	names := map[string]string{"#updated_at": "updated_at"}
	values := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	set := func(attr, value string) {
		sets = append(sets, "#"+attr+" = :"+attr)
		names["#"+attr] = attr
		values[":"+attr] = &types.AttributeValueMemberS{Value: value}
	}

	if u.Status != nil {
		set("status", string(*u.Status))
	}
	if u.PaymentStatus != nil {
		set("payment_status", string(*u.PaymentStatus))
	}
	if u.PaymentID != nil {
		set("payment_id", *u.PaymentID)
	}
	if u.Notes != nil {
		set("notes", *u.Notes)
	}
	if u.EstimatedDelivery != nil {
		set("estimated_delivery", formatTime(*u.EstimatedDelivery))
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
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

func toOrderItem(o entities.Order) orderItem {
	lines := make([]orderLineItem, 0, len(o.Items))
	for _, l := range o.Items {
		c := l.Customization
		lines = append(lines, orderLineItem{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			Price:        l.Price.String(),
			Quantity:     l.Quantity,
			Customization: customizationItem{
				Text:                c.Text,
				Color:               c.Color,
				Size:                c.Size,
				Material:            c.Material,
				SpecialInstructions: c.SpecialInstructions,
			},
		})
	}
	a := o.Customer.Address
	return orderItem{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Customer: customerItem{
			Name:           o.Customer.Name,
			Email:          o.Customer.Email,
			Phone:          o.Customer.Phone,
			WhatsAppNumber: o.Customer.WhatsAppNumber,
			Address:        addressItem{Street: a.Street, City: a.City, State: a.State, PostalCode: a.PostalCode},
		},
		Items:              lines,
		GiftWrap:           o.GiftWrap,
		TotalAmount:        o.TotalAmount.String(),
		Currency:           o.Currency,
		Status:             string(o.Status),
		PaymentStatus:      string(o.PaymentStatus),
		PaymentMethod:      string(o.PaymentMethod),
		PaymentSessionID:   o.PaymentSessionID,
		PaymentCheckoutURL: o.PaymentCheckoutURL,
		PaymentID:          o.PaymentID,
		Notes:              o.Notes,
		EstimatedDelivery:  formatTime(o.EstimatedDelivery),
		CreatedAt:          formatTime(o.CreatedAt),
		UpdatedAt:          formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	lines := make([]entities.OrderItem, 0, len(it.Items))
	for _, l := range it.Items {
		price, _ := decimal.NewFromString(l.Price)
		c := l.Customization
		lines = append(lines, entities.OrderItem{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			Price:        price,
			Quantity:     l.Quantity,
			Customization: entities.Customization{
				Text:                c.Text,
				Color:               c.Color,
				Size:                c.Size,
				Material:            c.Material,
				SpecialInstructions: c.SpecialInstructions,
			},
		})
	}
	total, _ := decimal.NewFromString(it.TotalAmount)
	a := it.Customer.Address
	return entities.Order{
		ID:          it.ID,
		OrderNumber: it.OrderNumber,
		Customer: entities.CustomerInfo{
			Name:           it.Customer.Name,
			Email:          it.Customer.Email,
			Phone:          it.Customer.Phone,
			WhatsAppNumber: it.Customer.WhatsAppNumber,
			Address:        entities.Address{Street: a.Street, City: a.City, State: a.State, PostalCode: a.PostalCode},
		},
		Items:              lines,
		GiftWrap:           it.GiftWrap,
		TotalAmount:        total,
		Currency:           it.Currency,
		Status:             entities.OrderStatus(it.Status),
		PaymentStatus:      entities.PaymentStatus(it.PaymentStatus),
		PaymentMethod:      entities.PaymentMethod(it.PaymentMethod),
		PaymentSessionID:   it.PaymentSessionID,
		PaymentCheckoutURL: it.PaymentCheckoutURL,
		PaymentID:          it.PaymentID,
		Notes:              it.Notes,
		EstimatedDelivery:  parseTime(it.EstimatedDelivery),
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
