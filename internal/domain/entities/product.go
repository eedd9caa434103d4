package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the fixed set of catalog sections.
type Category string

const (
	CategoryEmbroidery  Category = "embroidery"
	CategoryHanky       Category = "hanky"
	CategoryAccessories Category = "accessories"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryEmbroidery, CategoryHanky, CategoryAccessories:
		return true
	}
	return false
}

type SizeUnit string

const (
	SizeUnitInch       SizeUnit = "inch"
	SizeUnitCentimeter SizeUnit = "cm"
	SizeUnitMeter      SizeUnit = "m"
)

func (u SizeUnit) Valid() bool {
	switch u {
	case SizeUnitInch, SizeUnitCentimeter, SizeUnitMeter:
		return true
	}
	return false
}

// MaxProductImages bounds Product.Images.
const MaxProductImages = 10

// ProductOptions are the personalization choices a product offers.
type ProductOptions struct {
	Colors    []string `json:"colors"`
	Sizes     []string `json:"sizes"`
	SizeUnit  SizeUnit `json:"size_unit"`
	Materials []string `json:"materials"`
}

// Offers reports whether value is empty or one of the offered values.
func Offers(offered []string, value string) bool {
	if value == "" {
		return true
	}
	for _, o := range offered {
		if o == value {
			return true
		}
	}
	return false
}

// Product is a catalog item persisted in DynamoDB.
//
// Orders never reference a live product for pricing: name, price and first image
// are copied into the order line when the order is created.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Images       []string        `json:"images"`
	Customizable bool            `json:"customizable"`
	Options      ProductOptions  `json:"options"`
	InStock      bool            `json:"in_stock"`
	Featured     bool            `json:"featured"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PrimaryImage returns the first image or "".
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
