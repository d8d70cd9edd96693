package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/feature"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const featureColumns = `
	id, title, description, icon, image_url, display_order, is_active, benefits, category, created_at, updated_at`

var featureSortColumns = map[string]string{
	"order":      "display_order",
	"title":      "title",
	"created_at": "created_at",
}

type featureRepositoryImpl struct {
	db *database.DB
}

func NewFeatureRepository(db *database.DB) feature.FeatureRepository {
	return &featureRepositoryImpl{db: db}
}

func scanFeature(row pgx.Row) (feature.Feature, error) {
	var f feature.Feature
	err := row.Scan(
		&f.ID, &f.Title, &f.Description, &f.Icon, &f.ImageURL, &f.DisplayOrder, &f.IsActive,
		&f.Benefits, &f.Category, &f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

func collectFeatures(rows pgx.Rows) ([]feature.Feature, error) {
	defer rows.Close()

	features := []feature.Feature{}
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return features, nil
}

// Create implements feature.FeatureRepository.
func (r *featureRepositoryImpl) Create(ctx context.Context, f feature.Feature) (feature.Feature, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return feature.Feature{}, fmt.Errorf("generate feature id: %w", err)
	}

	query := `
		INSERT INTO features (id, title, description, icon, image_url, display_order, is_active, benefits, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + featureColumns

	return scanFeature(q.QueryRow(ctx, query,
		id.String(), f.Title, f.Description, f.Icon, f.ImageURL, f.DisplayOrder, f.IsActive,
		nonNilStrings(f.Benefits), f.Category,
	))
}

// GetByID implements feature.FeatureRepository.
func (r *featureRepositoryImpl) GetByID(ctx context.Context, id string) (feature.Feature, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanFeature(q.QueryRow(ctx, `SELECT `+featureColumns+` FROM features WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return feature.Feature{}, feature.ErrFeatureNotFound
		}
		return feature.Feature{}, err
	}
	return found, nil
}

// Update implements feature.FeatureRepository.
func (r *featureRepositoryImpl) Update(ctx context.Context, id string, req feature.UpdateFeatureRequest) (feature.Feature, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Benefits != nil {
		updates["benefits"] = nonNilStrings(*req.Benefits)
	}
	if req.Category != nil {
		updates["category"] = *req.Category
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

	query := fmt.Sprintf(`UPDATE features SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, featureColumns)

	updated, err := scanFeature(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return feature.Feature{}, feature.ErrFeatureNotFound
		}
		return feature.Feature{}, err
	}
	return updated, nil
}

// Delete implements feature.FeatureRepository.
func (r *featureRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM features WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return feature.ErrFeatureNotFound
	}
	return nil
}

// List implements feature.FeatureRepository.
func (r *featureRepositoryImpl) List(ctx context.Context, filter feature.FeatureFilter) ([]feature.Feature, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("category", filter.Category).
		EqBool("is_active", filter.IsActive).
		Search(filter.Search, "title", "description")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM features `+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count features: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`SELECT %s FROM features %s ORDER BY %s, created_at DESC %s`,
		featureColumns, where.SQL(), filter.OrderBy(featureSortColumns, "order"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list features: %w", err)
	}
	features, err := collectFeatures(rows)
	if err != nil {
		return nil, 0, err
	}
	return features, total, nil
}

// ListActive implements feature.FeatureRepository.
func (r *featureRepositoryImpl) ListActive(ctx context.Context) ([]feature.Feature, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+featureColumns+`
		FROM features
		WHERE is_active = TRUE
		ORDER BY display_order ASC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectFeatures(rows)
}
