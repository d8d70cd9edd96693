package award

import (
	"context"
	"fmt"

	"github.com/novatech-uz/company-backend-go/internal/domain/award"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type AwardServiceImpl struct {
	award.AwardRepository
	cache *cache.Cache
}

func NewAwardService(awardRepo award.AwardRepository, dashboardCache *cache.Cache) award.AwardService {
	return &AwardServiceImpl{
		AwardRepository: awardRepo,
		cache:           dashboardCache,
	}
}

// Create implements award.AwardService.
func (s *AwardServiceImpl) Create(ctx context.Context, req award.CreateAwardRequest) (award.Award, error) {
	if err := req.Validate(); err != nil {
		return award.Award{}, err
	}

	newAward := award.Award{
		Title:           req.Title,
		Description:     req.Description,
		Organization:    req.Organization,
		Category:        req.Category,
		Year:            req.Year,
		Date:            req.ParsedDate,
		ImageURL:        req.ImageURL,
		CertificateURL:  req.CertificateURL,
		VerificationURL: req.VerificationURL,
		Rank:            req.Rank,
		IsActive:        true,
		DisplayOrder:    req.DisplayOrder,
	}
	if req.IsActive != nil {
		newAward.IsActive = *req.IsActive
	}

	created, err := s.AwardRepository.Create(ctx, newAward)
	if err != nil {
		return award.Award{}, fmt.Errorf("failed to create award: %w", err)
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return created, nil
}

// Get implements award.AwardService.
func (s *AwardServiceImpl) Get(ctx context.Context, id string) (award.Award, error) {
	return s.AwardRepository.GetByID(ctx, id)
}

// Update implements award.AwardService.
func (s *AwardServiceImpl) Update(ctx context.Context, id string, req award.UpdateAwardRequest) (award.Award, error) {
	if err := req.Validate(); err != nil {
		return award.Award{}, err
	}

	updated, err := s.AwardRepository.Update(ctx, id, req)
	if err != nil {
		return award.Award{}, err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return updated, nil
}

// Delete implements award.AwardService.
func (s *AwardServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.AwardRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return nil
}

// List implements award.AwardService.
func (s *AwardServiceImpl) List(ctx context.Context, filter award.AwardFilter) (award.ListAwardResponse, error) {
	if err := filter.Validate(); err != nil {
		return award.ListAwardResponse{}, err
	}

	awards, total, err := s.AwardRepository.List(ctx, filter)
	if err != nil {
		return award.ListAwardResponse{}, fmt.Errorf("failed to list awards: %w", err)
	}
	return award.ListAwardResponse{
		Awards: awards,
		Meta:   listing.BuildMeta(total, filter.Params),
	}, nil
}

// ByYear implements award.AwardService.
func (s *AwardServiceImpl) ByYear(ctx context.Context, year int) ([]award.Award, error) {
	if year < 1900 || year > 2100 {
		return nil, validator.ValidationErrors{{Field: "year", Message: "year must be between 1900 and 2100"}}
	}
	return s.AwardRepository.ListByYear(ctx, year)
}

// Stats implements award.AwardService.
func (s *AwardServiceImpl) Stats(ctx context.Context) (award.AwardStats, error) {
	byCategory, err := s.AwardRepository.CountByCategory(ctx)
	if err != nil {
		return award.AwardStats{}, fmt.Errorf("failed to count awards by category: %w", err)
	}
	byYear, err := s.AwardRepository.CountByYear(ctx)
	if err != nil {
		return award.AwardStats{}, fmt.Errorf("failed to count awards by year: %w", err)
	}

	stats := award.AwardStats{ByCategory: byCategory, ByYear: byYear}
	for _, c := range byCategory {
		stats.Total += c.Count
	}
	return stats, nil
}
