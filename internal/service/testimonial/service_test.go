package testimonial

import (
	"context"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/testimonial"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTestimonialRepo struct {
	testimonial.TestimonialRepository

	created      testimonial.Testimonial
	featuredSize int
	minRating    int
	counts       []testimonial.RatingCount
}

func (s *stubTestimonialRepo) Create(_ context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	t.ID = "0195b7a4-0000-7000-8000-0000000000b1"
	s.created = t
	return t, nil
}

func (s *stubTestimonialRepo) ListFeatured(_ context.Context, limit int) ([]testimonial.Testimonial, error) {
	s.featuredSize = limit
	return []testimonial.Testimonial{}, nil
}

func (s *stubTestimonialRepo) ListByMinRating(_ context.Context, rating int) ([]testimonial.Testimonial, error) {
	s.minRating = rating
	return []testimonial.Testimonial{}, nil
}

func (s *stubTestimonialRepo) CountByRating(context.Context) ([]testimonial.RatingCount, error) {
	return s.counts, nil
}

func validCreate() testimonial.CreateTestimonialRequest {
	return testimonial.CreateTestimonialRequest{
		ClientName:  "Malika Yusupova",
		Testimonial: "Delivered the mobile app two weeks early.",
	}
}

func TestCreate_Defaults(t *testing.T) {
	repo := &stubTestimonialRepo{}

	_, err := NewTestimonialService(repo, nil).Create(context.Background(), validCreate())

	require.NoError(t, err)
	assert.Equal(t, 5, repo.created.Rating)
	assert.True(t, repo.created.IsActive)
	assert.False(t, repo.created.IsVerified)
	assert.False(t, repo.created.DateReceived.IsZero())
}

func TestCreate_KeepsGivenValues(t *testing.T) {
	repo := &stubTestimonialRepo{}
	req := validCreate()
	received := "2024-08-02"
	country := "Uzbekistan"
	req.Rating = 3
	req.DateReceived = &received
	req.Location = &testimonial.Location{Country: &country}

	_, err := NewTestimonialService(repo, nil).Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 3, repo.created.Rating)
	assert.Equal(t, time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC), repo.created.DateReceived)
	assert.Equal(t, &country, repo.created.Location.Country)
}

func TestCreate_Invalid(t *testing.T) {
	repo := &stubTestimonialRepo{}
	req := validCreate()
	req.Rating = 6
	project := "not-a-uuid"
	req.ProjectID = &project

	_, err := NewTestimonialService(repo, nil).Create(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Empty(t, repo.created.ID)
}

func TestByRating_IsMinimum(t *testing.T) {
	repo := &stubTestimonialRepo{}
	svc := NewTestimonialService(repo, nil)

	_, err := svc.ByRating(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, repo.minRating)

	for _, rating := range []int{0, 6} {
		_, err := svc.ByRating(context.Background(), rating)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "rating %d", rating)
	}
}

func TestFeatured_ClampsLimit(t *testing.T) {
	repo := &stubTestimonialRepo{}
	svc := NewTestimonialService(repo, nil)

	_, err := svc.Featured(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultFeaturedLimit, repo.featuredSize)

	_, err = svc.Featured(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, maxFeaturedLimit, repo.featuredSize)
}

func TestStats_WeightedAverage(t *testing.T) {
	repo := &stubTestimonialRepo{counts: []testimonial.RatingCount{
		{Rating: 5, Count: 2},
		{Rating: 4, Count: 1},
	}}

	stats, err := NewTestimonialService(repo, nil).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, 4.67, stats.AvgRating)
}

func TestStats_Empty(t *testing.T) {
	stats, err := NewTestimonialService(&stubTestimonialRepo{}, nil).Stats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AvgRating)
}
