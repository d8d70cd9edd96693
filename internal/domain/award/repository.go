package award

import "context"

type AwardRepository interface {
	Create(ctx context.Context, a Award) (Award, error)
	GetByID(ctx context.Context, id string) (Award, error)
	Update(ctx context.Context, id string, req UpdateAwardRequest) (Award, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AwardFilter) ([]Award, int64, error)
	ListByYear(ctx context.Context, year int) ([]Award, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	CountByYear(ctx context.Context) ([]YearCount, error)
}
