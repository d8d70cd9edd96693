package award

import (
	"context"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/award"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAwardRepo struct {
	award.AwardRepository

	created award.Award
	year    int
}

func (s *stubAwardRepo) Create(_ context.Context, a award.Award) (award.Award, error) {
	a.ID = "0195b7a4-0000-7000-8000-0000000000a1"
	s.created = a
	return a, nil
}

func (s *stubAwardRepo) ListByYear(_ context.Context, year int) ([]award.Award, error) {
	s.year = year
	return []award.Award{}, nil
}

func (s *stubAwardRepo) CountByCategory(context.Context) ([]award.CategoryCount, error) {
	return []award.CategoryCount{{Category: "innovation", Count: 3}, {Category: "quality", Count: 2}}, nil
}

func (s *stubAwardRepo) CountByYear(context.Context) ([]award.YearCount, error) {
	return []award.YearCount{{Year: 2024, Count: 5}}, nil
}

func validCreate() award.CreateAwardRequest {
	return award.CreateAwardRequest{
		Title:        "Best Fintech Startup",
		Description:  "Recognised for the payments platform.",
		Organization: "Tashkent IT Park",
	}
}

func TestCreate_YearFollowsDate(t *testing.T) {
	repo := &stubAwardRepo{}
	req := validCreate()
	date := "2023-11-20"
	req.Date = &date

	_, err := NewAwardService(repo, nil).Create(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, repo.created.Year)
	assert.Equal(t, 2023, *repo.created.Year)
	require.NotNil(t, repo.created.Date)
	assert.Equal(t, time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC), *repo.created.Date)
	assert.Equal(t, "other", repo.created.Category)
	assert.True(t, repo.created.IsActive)
}

func TestCreate_ExplicitYearWins(t *testing.T) {
	repo := &stubAwardRepo{}
	req := validCreate()
	date := "2023-11-20"
	year := 2024
	req.Date = &date
	req.Year = &year

	_, err := NewAwardService(repo, nil).Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 2024, *repo.created.Year)
}

func TestCreate_NoDateNoYear(t *testing.T) {
	repo := &stubAwardRepo{}

	_, err := NewAwardService(repo, nil).Create(context.Background(), validCreate())

	require.NoError(t, err)
	assert.Nil(t, repo.created.Year)
	assert.Nil(t, repo.created.Date)
}

func TestCreate_Invalid(t *testing.T) {
	repo := &stubAwardRepo{}
	req := validCreate()
	bad := "20-11-2023"
	req.Date = &bad
	req.Category = "bravery"

	_, err := NewAwardService(repo, nil).Create(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Empty(t, repo.created.ID)
}

func TestByYear_Bounds(t *testing.T) {
	repo := &stubAwardRepo{}
	svc := NewAwardService(repo, nil)

	_, err := svc.ByYear(context.Background(), 2022)
	require.NoError(t, err)
	assert.Equal(t, 2022, repo.year)

	for _, year := range []int{1899, 2101} {
		_, err := svc.ByYear(context.Background(), year)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "year %d", year)
	}
}

func TestStats_TotalsCategories(t *testing.T) {
	stats, err := NewAwardService(&stubAwardRepo{}, nil).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Len(t, stats.ByYear, 1)
}
