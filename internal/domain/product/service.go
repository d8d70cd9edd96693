package product

import "context"

type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	// Get accepts either the id or the slug.
	Get(ctx context.Context, idOrSlug string) (Product, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) (ListProductResponse, error)
	Featured(ctx context.Context, limit int) ([]Product, error)
	ByCategory(ctx context.Context, category string) ([]Product, error)
	Stats(ctx context.Context) ([]CategoryStat, error)
}
