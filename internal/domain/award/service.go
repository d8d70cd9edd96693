package award

import "context"

type AwardService interface {
	Create(ctx context.Context, req CreateAwardRequest) (Award, error)
	Get(ctx context.Context, id string) (Award, error)
	Update(ctx context.Context, id string, req UpdateAwardRequest) (Award, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AwardFilter) (ListAwardResponse, error)
	ByYear(ctx context.Context, year int) ([]Award, error)
	Stats(ctx context.Context) (AwardStats, error)
}
