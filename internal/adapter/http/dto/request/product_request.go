package request

import (
	"strings"

	"handcrafted_gifts/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ProductOptionsRequest struct {
	Colors    []string `json:"colors"`
	Sizes     []string `json:"sizes"`
	SizeUnit  string   `json:"size_unit"`
	Materials []string `json:"materials"`
}

// ProductRequest is the admin create/replace payload. InStock defaults to true
// when omitted.
type ProductRequest struct {
	Name         string                `json:"name" binding:"required"`
	Category     string                `json:"category" binding:"required"`
	Description  string                `json:"description"`
	BasePrice    decimal.Decimal       `json:"base_price"`
	Images       []string              `json:"images"`
	Customizable bool                  `json:"customizable"`
	Options      ProductOptionsRequest `json:"options"`
	InStock      *bool                 `json:"in_stock"`
	Featured     bool                  `json:"featured"`
}

func (r ProductRequest) ToEntity() entities.Product {
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return entities.Product{
		Name:         strings.TrimSpace(r.Name),
		Category:     entities.Category(strings.ToLower(strings.TrimSpace(r.Category))),
		Description:  strings.TrimSpace(r.Description),
		BasePrice:    r.BasePrice,
		Images:       r.Images,
		Customizable: r.Customizable,
		Options: entities.ProductOptions{
			Colors:    r.Options.Colors,
			Sizes:     r.Options.Sizes,
			SizeUnit:  entities.SizeUnit(strings.TrimSpace(r.Options.SizeUnit)),
			Materials: r.Options.Materials,
		},
		InStock:  inStock,
		Featured: r.Featured,
	}
}

// ImageImportRequest asks the server to fetch and host an image by URL.
type ImageImportRequest struct {
	ImageURL string `json:"image_url" form:"image_url" binding:"required"`
}
