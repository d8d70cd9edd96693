package product

import (
	"context"
	"fmt"

	"github.com/novatech-uz/company-backend-go/internal/domain/product"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/slug"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

const (
	defaultFeaturedLimit = 6
	maxFeaturedLimit     = 50
)

type ProductServiceImpl struct {
	product.ProductRepository
	cache *cache.Cache
}

func NewProductService(productRepo product.ProductRepository, dashboardCache *cache.Cache) product.ProductService {
	return &ProductServiceImpl{
		ProductRepository: productRepo,
		cache:             dashboardCache,
	}
}

// Create implements product.ProductService.
func (s *ProductServiceImpl) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	if err := req.Validate(); err != nil {
		return product.Product{}, err
	}

	newProduct := product.Product{
		Name:             req.Name,
		Slug:             slug.Make(req.Name),
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		MainImageURL:     req.MainImageURL,
		Gallery:          req.Gallery,
		Features:         req.Features,
		Category:         req.Category,
		Price:            req.Price,
		Pricing:          product.Pricing{Currency: "USD"},
		DemoURL:          req.DemoURL,
		GithubURL:        req.GithubURL,
		DownloadURL:      req.DownloadURL,
		Status:           req.Status,
		Version:          req.Version,
		ReleaseDate:      req.ParsedReleaseDate,
		IsFeatured:       req.IsFeatured,
		IsActive:         true,
		DisplayOrder:     req.DisplayOrder,
	}
	if req.Pricing != nil {
		newProduct.Pricing.Amount = req.Pricing.Amount
		newProduct.Pricing.Period = req.Pricing.Period
		if req.Pricing.Currency != "" {
			newProduct.Pricing.Currency = req.Pricing.Currency
		}
	}
	if req.IsActive != nil {
		newProduct.IsActive = *req.IsActive
	}

	created, err := s.ProductRepository.Create(ctx, newProduct)
	if err != nil {
		return product.Product{}, err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return created, nil
}

// Get implements product.ProductService.
func (s *ProductServiceImpl) Get(ctx context.Context, idOrSlug string) (product.Product, error) {
	if validator.IsValidUUID(idOrSlug) {
		return s.ProductRepository.GetByID(ctx, idOrSlug)
	}
	return s.ProductRepository.GetBySlug(ctx, idOrSlug)
}

// Update implements product.ProductService. Renaming regenerates the slug.
func (s *ProductServiceImpl) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	if err := req.Validate(); err != nil {
		return product.Product{}, err
	}
	if req.Name != nil {
		newSlug := slug.Make(*req.Name)
		req.Slug = &newSlug
	}

	updated, err := s.ProductRepository.Update(ctx, id, req)
	if err != nil {
		return product.Product{}, err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return updated, nil
}

// Delete implements product.ProductService.
func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.ProductRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "dashboard:*")
	return nil
}

// List implements product.ProductService.
func (s *ProductServiceImpl) List(ctx context.Context, filter product.ProductFilter) (product.ListProductResponse, error) {
	if err := filter.Validate(); err != nil {
		return product.ListProductResponse{}, err
	}

	products, total, err := s.ProductRepository.List(ctx, filter)
	if err != nil {
		return product.ListProductResponse{}, fmt.Errorf("failed to list products: %w", err)
	}
	return product.ListProductResponse{
		Products: products,
		Meta:     listing.BuildMeta(total, filter.Params),
	}, nil
}

// Featured implements product.ProductService.
func (s *ProductServiceImpl) Featured(ctx context.Context, limit int) ([]product.Product, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}
	return s.ProductRepository.ListFeatured(ctx, limit)
}

// ByCategory implements product.ProductService.
func (s *ProductServiceImpl) ByCategory(ctx context.Context, category string) ([]product.Product, error) {
	if !validator.IsInSlice(category, product.Categories) {
		return nil, validator.ValidationErrors{{Field: "category", Message: "invalid category"}}
	}
	return s.ProductRepository.ListByCategory(ctx, category)
}

// Stats implements product.ProductService.
func (s *ProductServiceImpl) Stats(ctx context.Context) ([]product.CategoryStat, error) {
	stats, err := s.ProductRepository.StatsByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate products: %w", err)
	}
	return stats, nil
}
