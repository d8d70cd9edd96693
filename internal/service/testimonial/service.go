package testimonial

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/testimonial"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

const (
	defaultFeaturedLimit = 6
	maxFeaturedLimit     = 50
)

type TestimonialServiceImpl struct {
	testimonial.TestimonialRepository
	cache *cache.Cache
}

func NewTestimonialService(testimonialRepo testimonial.TestimonialRepository, dashboardCache *cache.Cache) testimonial.TestimonialService {
	return &TestimonialServiceImpl{
		TestimonialRepository: testimonialRepo,
		cache:                 dashboardCache,
	}
}

// Create implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) Create(ctx context.Context, req testimonial.CreateTestimonialRequest) (testimonial.Testimonial, error) {
	if err := req.Validate(); err != nil {
		return testimonial.Testimonial{}, err
	}

	newTestimonial := testimonial.Testimonial{
		ClientName:     req.ClientName,
		ClientPosition: req.ClientPosition,
		ClientCompany:  req.ClientCompany,
		ClientAvatar:   req.ClientAvatar,
		CompanyLogo:    req.CompanyLogo,
		Testimonial:    req.Testimonial,
		Rating:         req.Rating,
		ProjectID:      req.ProjectID,
		Service:        req.Service,
		DateReceived:   time.Now().UTC().Truncate(24 * time.Hour),
		IsVerified:     req.IsVerified,
		IsFeatured:     req.IsFeatured,
		IsActive:       true,
		DisplayOrder:   req.DisplayOrder,
		LinkedinURL:    req.LinkedinURL,
		WebsiteURL:     req.WebsiteURL,
	}
	if req.ParsedDateReceived != nil {
		newTestimonial.DateReceived = *req.ParsedDateReceived
	}
	if req.Location != nil {
		newTestimonial.Location = *req.Location
	}
	if req.IsActive != nil {
		newTestimonial.IsActive = *req.IsActive
	}

	created, err := s.TestimonialRepository.Create(ctx, newTestimonial)
	if err != nil {
		return testimonial.Testimonial{}, err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return created, nil
}

// Get implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) Get(ctx context.Context, id string) (testimonial.Testimonial, error) {
	return s.TestimonialRepository.GetByID(ctx, id)
}

// Update implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) Update(ctx context.Context, id string, req testimonial.UpdateTestimonialRequest) (testimonial.Testimonial, error) {
	if err := req.Validate(); err != nil {
		return testimonial.Testimonial{}, err
	}

	updated, err := s.TestimonialRepository.Update(ctx, id, req)
	if err != nil {
		return testimonial.Testimonial{}, err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return updated, nil
}

// Delete implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.TestimonialRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return nil
}

// List implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) List(ctx context.Context, filter testimonial.TestimonialFilter) (testimonial.ListTestimonialResponse, error) {
	if err := filter.Validate(); err != nil {
		return testimonial.ListTestimonialResponse{}, err
	}

	list, total, err := s.TestimonialRepository.List(ctx, filter)
	if err != nil {
		return testimonial.ListTestimonialResponse{}, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonial.ListTestimonialResponse{
		Testimonials: list,
		Meta:         listing.BuildMeta(total, filter.Params),
	}, nil
}

// Featured implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) Featured(ctx context.Context, limit int) ([]testimonial.Testimonial, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}
	return s.TestimonialRepository.ListFeatured(ctx, limit)
}

// ByRating implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) ByRating(ctx context.Context, rating int) ([]testimonial.Testimonial, error) {
	if rating < 1 || rating > 5 {
		return nil, validator.ValidationErrors{{Field: "rating", Message: "rating must be between 1 and 5"}}
	}
	return s.TestimonialRepository.ListByMinRating(ctx, rating)
}

// Stats implements testimonial.TestimonialService.
func (s *TestimonialServiceImpl) Stats(ctx context.Context) (testimonial.TestimonialStats, error) {
	byRating, err := s.TestimonialRepository.CountByRating(ctx)
	if err != nil {
		return testimonial.TestimonialStats{}, fmt.Errorf("failed to count testimonials by rating: %w", err)
	}

	stats := testimonial.TestimonialStats{ByRating: byRating}
	var sum int64
	for _, c := range byRating {
		stats.Total += c.Count
		sum += int64(c.Rating) * c.Count
	}
	if stats.Total > 0 {
		stats.AvgRating = math.Round(float64(sum)/float64(stats.Total)*100) / 100
	}
	return stats, nil
}
