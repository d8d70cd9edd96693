package technology

import (
	"context"
	"fmt"

	"github.com/novatech-uz/company-backend-go/internal/domain/technology"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/slug"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

const (
	defaultFeaturedLimit = 12
	maxFeaturedLimit     = 50
)

type TechnologyServiceImpl struct {
	technology.TechnologyRepository
	cache *cache.Cache
}

func NewTechnologyService(technologyRepo technology.TechnologyRepository, dashboardCache *cache.Cache) technology.TechnologyService {
	return &TechnologyServiceImpl{
		TechnologyRepository: technologyRepo,
		cache:                dashboardCache,
	}
}

// Create implements technology.TechnologyService.
func (s *TechnologyServiceImpl) Create(ctx context.Context, req technology.CreateTechnologyRequest) (technology.Technology, error) {
	if err := req.Validate(); err != nil {
		return technology.Technology{}, err
	}

	newTech := technology.Technology{
		Name:              req.Name,
		Slug:              slug.Make(req.Name),
		Description:       req.Description,
		IconURL:           req.IconURL,
		LogoURL:           req.LogoURL,
		Category:          req.Category,
		Type:              req.Type,
		OfficialWebsite:   req.OfficialWebsite,
		Documentation:     req.Documentation,
		ProficiencyLevel:  req.ProficiencyLevel,
		YearsOfExperience: req.YearsOfExperience,
		IsActive:          true,
		IsFeatured:        req.IsFeatured,
		DisplayOrder:      req.DisplayOrder,
		Color:             req.Color,
	}
	if req.IsActive != nil {
		newTech.IsActive = *req.IsActive
	}

	created, err := s.TechnologyRepository.Create(ctx, newTech)
	if err != nil {
		return technology.Technology{}, err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return created, nil
}

// Get implements technology.TechnologyService.
func (s *TechnologyServiceImpl) Get(ctx context.Context, idOrSlug string) (technology.Technology, error) {
	if validator.IsValidUUID(idOrSlug) {
		return s.TechnologyRepository.GetByID(ctx, idOrSlug)
	}
	return s.TechnologyRepository.GetBySlug(ctx, idOrSlug)
}

// Update implements technology.TechnologyService.
func (s *TechnologyServiceImpl) Update(ctx context.Context, id string, req technology.UpdateTechnologyRequest) (technology.Technology, error) {
	if err := req.Validate(); err != nil {
		return technology.Technology{}, err
	}
	if req.Name != nil {
		newSlug := slug.Make(*req.Name)
		req.Slug = &newSlug
	}

	updated, err := s.TechnologyRepository.Update(ctx, id, req)
	if err != nil {
		return technology.Technology{}, err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return updated, nil
}

// Delete implements technology.TechnologyService.
func (s *TechnologyServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.TechnologyRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return nil
}

// List implements technology.TechnologyService.
func (s *TechnologyServiceImpl) List(ctx context.Context, filter technology.TechnologyFilter) (technology.ListTechnologyResponse, error) {
	if err := filter.Validate(); err != nil {
		return technology.ListTechnologyResponse{}, err
	}

	techs, total, err := s.TechnologyRepository.List(ctx, filter)
	if err != nil {
		return technology.ListTechnologyResponse{}, fmt.Errorf("failed to list technologies: %w", err)
	}
	return technology.ListTechnologyResponse{
		Technologies: techs,
		Meta:         listing.BuildMeta(total, filter.Params),
	}, nil
}

// Featured implements technology.TechnologyService.
func (s *TechnologyServiceImpl) Featured(ctx context.Context, limit int) ([]technology.Technology, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}
	return s.TechnologyRepository.ListFeatured(ctx, limit)
}

// ByCategory implements technology.TechnologyService.
func (s *TechnologyServiceImpl) ByCategory(ctx context.Context, category string) ([]technology.Technology, error) {
	if !validator.IsInSlice(category, technology.Categories) {
		return nil, validator.ValidationErrors{{Field: "category", Message: "invalid category"}}
	}
	return s.TechnologyRepository.ListByCategory(ctx, category)
}
