package feature

import "context"

type FeatureService interface {
	Create(ctx context.Context, req CreateFeatureRequest) (Feature, error)
	Get(ctx context.Context, id string) (Feature, error)
	Update(ctx context.Context, id string, req UpdateFeatureRequest) (Feature, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter FeatureFilter) (ListFeatureResponse, error)
	Active(ctx context.Context) ([]Feature, error)
}
