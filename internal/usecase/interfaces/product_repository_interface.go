package interfaces

import (
	"context"

	"handcrafted_gifts/internal/domain/entities"
)

// ProductFilter narrows catalog listings. The zero value lists in-stock
// products of every category.
type ProductFilter struct {
	Category          entities.Category
	FeaturedOnly      bool
	IncludeOutOfStock bool
}

// IProductRepository abstracts DynamoDB persistence for Product.
//
// Lookups return the zero value (empty ID) when the item does not exist.
type IProductRepository interface {
	Create(ctx context.Context, p entities.Product) (entities.Product, error)
	GetByID(ctx context.Context, id string) (entities.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]entities.Product, error)
	Update(ctx context.Context, p entities.Product) (entities.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}
