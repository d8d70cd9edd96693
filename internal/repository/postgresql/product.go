package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/product"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const productColumns = `
	id, name, slug, short_description, full_description, main_image_url, gallery, features,
	category, price, pricing_currency, pricing_amount, pricing_period, demo_url, github_url,
	download_url, status, version, release_date, downloads, rating_average, rating_count,
	is_featured, is_active, display_order, created_at, updated_at`

var productSortColumns = map[string]string{
	"name":         "name",
	"created_at":   "created_at",
	"order":        "display_order",
	"downloads":    "downloads",
	"rating":       "rating_average",
	"release_date": "release_date",
}

type productRepositoryImpl struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.ProductRepository {
	return &productRepositoryImpl{db: db}
}

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.ShortDescription, &p.FullDescription, &p.MainImageURL, &p.Gallery, &p.Features,
		&p.Category, &p.Price, &p.Pricing.Currency, &p.Pricing.Amount, &p.Pricing.Period, &p.DemoURL, &p.GithubURL,
		&p.DownloadURL, &p.Status, &p.Version, &p.ReleaseDate, &p.Downloads, &p.Rating.Average, &p.Rating.Count,
		&p.IsFeatured, &p.IsActive, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Create implements product.ProductRepository.
func (r *productRepositoryImpl) Create(ctx context.Context, p product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return product.Product{}, fmt.Errorf("generate product id: %w", err)
	}

	query := `
		INSERT INTO products (
			id, name, slug, short_description, full_description, main_image_url, gallery, features,
			category, price, pricing_currency, pricing_amount, pricing_period, demo_url, github_url,
			download_url, status, version, release_date, is_featured, is_active, display_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING ` + productColumns

	created, err := scanProduct(q.QueryRow(ctx, query,
		id.String(), p.Name, p.Slug, p.ShortDescription, p.FullDescription, p.MainImageURL,
		nonNilStrings(p.Gallery), nonNilStrings(p.Features), p.Category, p.Price, p.Pricing.Currency,
		p.Pricing.Amount, p.Pricing.Period, p.DemoURL, p.GithubURL, p.DownloadURL, p.Status, p.Version,
		p.ReleaseDate, p.IsFeatured, p.IsActive, p.DisplayOrder,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return product.Product{}, product.ErrProductNameExists
		}
		return product.Product{}, err
	}
	return created, nil
}

// GetByID implements product.ProductRepository.
func (r *productRepositoryImpl) GetByID(ctx context.Context, id string) (product.Product, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetBySlug implements product.ProductRepository.
func (r *productRepositoryImpl) GetBySlug(ctx context.Context, slug string) (product.Product, error) {
	return r.getOne(ctx, `slug = $1`, slug)
}

func (r *productRepositoryImpl) getOne(ctx context.Context, cond string, arg string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanProduct(q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE `+cond, arg))
	if err != nil {
		if isNoRows(err) {
			return product.Product{}, product.ErrProductNotFound
		}
		return product.Product{}, err
	}
	return found, nil
}

// Update implements product.ProductRepository.
func (r *productRepositoryImpl) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.FullDescription != nil {
		updates["full_description"] = *req.FullDescription
	}
	if req.MainImageURL != nil {
		updates["main_image_url"] = *req.MainImageURL
	}
	if req.Gallery != nil {
		updates["gallery"] = nonNilStrings(*req.Gallery)
	}
	if req.Features != nil {
		updates["features"] = nonNilStrings(*req.Features)
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Pricing != nil {
		if req.Pricing.Currency != "" {
			updates["pricing_currency"] = req.Pricing.Currency
		}
		updates["pricing_amount"] = req.Pricing.Amount
		updates["pricing_period"] = req.Pricing.Period
	}
	if req.DemoURL != nil {
		updates["demo_url"] = *req.DemoURL
	}
	if req.GithubURL != nil {
		updates["github_url"] = *req.GithubURL
	}
	if req.DownloadURL != nil {
		updates["download_url"] = *req.DownloadURL
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Version != nil {
		updates["version"] = *req.Version
	}
	if req.ParsedReleaseDate != nil {
		updates["release_date"] = *req.ParsedReleaseDate
	}
	if req.Downloads != nil {
		updates["downloads"] = *req.Downloads
	}
	if req.Rating != nil {
		updates["rating_average"] = req.Rating.Average
		updates["rating_count"] = req.Rating.Count
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, productColumns)

	updated, err := scanProduct(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return product.Product{}, product.ErrProductNotFound
		}
		if isUniqueViolation(err) {
			return product.Product{}, product.ErrProductNameExists
		}
		return product.Product{}, err
	}
	return updated, nil
}

// Delete implements product.ProductRepository.
func (r *productRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// List implements product.ProductRepository.
func (r *productRepositoryImpl) List(ctx context.Context, filter product.ProductFilter) ([]product.Product, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("category", filter.Category).
		EqString("status", filter.Status).
		EqString("price", filter.Price).
		EqBool("is_featured", filter.IsFeatured).
		EqBool("is_active", filter.IsActive).
		Search(filter.Search, "name", "short_description", "full_description")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s, created_at DESC %s`,
		productColumns, where.SQL(), filter.OrderBy(productSortColumns, "order"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListFeatured implements product.ProductRepository.
func (r *productRepositoryImpl) ListFeatured(ctx context.Context, limit int) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_featured = TRUE AND is_active = TRUE
		ORDER BY display_order ASC, created_at DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// ListByCategory implements product.ProductRepository.
func (r *productRepositoryImpl) ListByCategory(ctx context.Context, category string) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1 AND is_active = TRUE
		ORDER BY display_order ASC, created_at DESC
	`
	rows, err := q.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// StatsByCategory implements product.ProductRepository.
func (r *productRepositoryImpl) StatsByCategory(ctx context.Context) ([]product.CategoryStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT category, COUNT(*), COALESCE(ROUND(AVG(rating_average), 2), 0)::float8, COALESCE(SUM(downloads), 0)
		FROM products
		WHERE is_active = TRUE
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []product.CategoryStat{}
	for rows.Next() {
		var s product.CategoryStat
		if err := rows.Scan(&s.Category, &s.Count, &s.AvgRating, &s.TotalDownloads); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Recent implements product.ProductRepository.
func (r *productRepositoryImpl) Recent(ctx context.Context, limit int) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}
