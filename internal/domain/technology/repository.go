package technology

import "context"

type TechnologyRepository interface {
	Create(ctx context.Context, t Technology) (Technology, error)
	GetByID(ctx context.Context, id string) (Technology, error)
	GetBySlug(ctx context.Context, slug string) (Technology, error)
	Update(ctx context.Context, id string, req UpdateTechnologyRequest) (Technology, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TechnologyFilter) ([]Technology, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]Technology, error)
	ListByCategory(ctx context.Context, category string) ([]Technology, error)
}
