package feature

import "context"

type FeatureRepository interface {
	Create(ctx context.Context, f Feature) (Feature, error)
	GetByID(ctx context.Context, id string) (Feature, error)
	Update(ctx context.Context, id string, req UpdateFeatureRequest) (Feature, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter FeatureFilter) ([]Feature, int64, error)
	ListActive(ctx context.Context) ([]Feature, error)
}
