package technology

import "context"

type TechnologyService interface {
	Create(ctx context.Context, req CreateTechnologyRequest) (Technology, error)
	Get(ctx context.Context, idOrSlug string) (Technology, error)
	Update(ctx context.Context, id string, req UpdateTechnologyRequest) (Technology, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TechnologyFilter) (ListTechnologyResponse, error)
	Featured(ctx context.Context, limit int) ([]Technology, error)
	ByCategory(ctx context.Context, category string) ([]Technology, error)
}
