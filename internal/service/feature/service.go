package feature

import (
	"context"
	"fmt"

	"github.com/novatech-uz/company-backend-go/internal/domain/feature"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type FeatureServiceImpl struct {
	feature.FeatureRepository
}

func NewFeatureService(featureRepo feature.FeatureRepository) feature.FeatureService {
	return &FeatureServiceImpl{FeatureRepository: featureRepo}
}

// Create implements feature.FeatureService.
func (s *FeatureServiceImpl) Create(ctx context.Context, req feature.CreateFeatureRequest) (feature.Feature, error) {
	if err := req.Validate(); err != nil {
		return feature.Feature{}, err
	}

	newFeature := feature.Feature{
		Title:        req.Title,
		Description:  req.Description,
		Icon:         req.Icon,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
		Benefits:     req.Benefits,
		Category:     req.Category,
	}
	if req.IsActive != nil {
		newFeature.IsActive = *req.IsActive
	}

	created, err := s.FeatureRepository.Create(ctx, newFeature)
	if err != nil {
		return feature.Feature{}, fmt.Errorf("failed to create feature: %w", err)
	}
	return created, nil
}

// Get implements feature.FeatureService.
func (s *FeatureServiceImpl) Get(ctx context.Context, id string) (feature.Feature, error) {
	return s.FeatureRepository.GetByID(ctx, id)
}

// Update implements feature.FeatureService.
func (s *FeatureServiceImpl) Update(ctx context.Context, id string, req feature.UpdateFeatureRequest) (feature.Feature, error) {
	if err := req.Validate(); err != nil {
		return feature.Feature{}, err
	}
	return s.FeatureRepository.Update(ctx, id, req)
}

// Delete implements feature.FeatureService.
func (s *FeatureServiceImpl) Delete(ctx context.Context, id string) error {
	return s.FeatureRepository.Delete(ctx, id)
}

// List implements feature.FeatureService.
func (s *FeatureServiceImpl) List(ctx context.Context, filter feature.FeatureFilter) (feature.ListFeatureResponse, error) {
	if err := filter.Validate(); err != nil {
		return feature.ListFeatureResponse{}, err
	}

	features, total, err := s.FeatureRepository.List(ctx, filter)
	if err != nil {
		return feature.ListFeatureResponse{}, fmt.Errorf("failed to list features: %w", err)
	}
	return feature.ListFeatureResponse{
		Features: features,
		Meta:     listing.BuildMeta(total, filter.Params),
	}, nil
}

// Active implements feature.FeatureService.
func (s *FeatureServiceImpl) Active(ctx context.Context) ([]feature.Feature, error) {
	return s.FeatureRepository.ListActive(ctx)
}
