package product

import "context"

type ProductRepository interface {
	Create(ctx context.Context, p Product) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	StatsByCategory(ctx context.Context) ([]CategoryStat, error)
	Recent(ctx context.Context, limit int) ([]Product, error)
}
