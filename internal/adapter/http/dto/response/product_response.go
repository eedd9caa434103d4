package response

import (
	"time"

	"handcrafted_gifts/internal/domain/entities"
)

type ProductOptionsResponse struct {
	Colors    []string `json:"colors"`
	Sizes     []string `json:"sizes"`
	SizeUnit  string   `json:"size_unit,omitempty"`
	Materials []string `json:"materials"`
}

type ProductResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Category     string                 `json:"category"`
	Description  string                 `json:"description"`
	BasePrice    float64                `json:"base_price"`
	Images       []string               `json:"images"`
	Customizable bool                   `json:"customizable"`
	Options      ProductOptionsResponse `json:"options"`
	InStock      bool                   `json:"in_stock"`
	Featured     bool                   `json:"featured"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func FromProduct(p entities.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     string(p.Category),
		Description:  p.Description,
		BasePrice:    p.BasePrice.InexactFloat64(),
		Images:       nonNil(p.Images),
		Customizable: p.Customizable,
		Options: ProductOptionsResponse{
			Colors:    nonNil(p.Options.Colors),
			Sizes:     nonNil(p.Options.Sizes),
			SizeUnit:  string(p.Options.SizeUnit),
			Materials: nonNil(p.Options.Materials),
		},
		InStock:   p.InStock,
		Featured:  p.Featured,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromProducts(ps []entities.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}

type ImageResponse struct {
	URL string `json:"url"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
