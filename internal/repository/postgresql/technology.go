package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/technology"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const technologyColumns = `
	id, name, slug, description, icon_url, logo_url, category, type, official_website, documentation,
	proficiency_level, years_of_experience, is_active, is_featured, display_order, color, created_at, updated_at`

var technologySortColumns = map[string]string{
	"name":                "name",
	"order":               "display_order",
	"years_of_experience": "years_of_experience",
	"created_at":          "created_at",
}

type technologyRepositoryImpl struct {
	db *database.DB
}

func NewTechnologyRepository(db *database.DB) technology.TechnologyRepository {
	return &technologyRepositoryImpl{db: db}
}

func scanTechnology(row pgx.Row) (technology.Technology, error) {
	var t technology.Technology
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.IconURL, &t.LogoURL, &t.Category, &t.Type,
		&t.OfficialWebsite, &t.Documentation, &t.ProficiencyLevel, &t.YearsOfExperience,
		&t.IsActive, &t.IsFeatured, &t.DisplayOrder, &t.Color, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func collectTechnologies(rows pgx.Rows) ([]technology.Technology, error) {
	defer rows.Close()

	techs := []technology.Technology{}
	for rows.Next() {
		t, err := scanTechnology(rows)
		if err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return techs, nil
}

// Create implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) Create(ctx context.Context, t technology.Technology) (technology.Technology, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return technology.Technology{}, fmt.Errorf("generate technology id: %w", err)
	}

	query := `
		INSERT INTO technologies (
			id, name, slug, description, icon_url, logo_url, category, type, official_website, documentation,
			proficiency_level, years_of_experience, is_active, is_featured, display_order, color
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + technologyColumns

	created, err := scanTechnology(q.QueryRow(ctx, query,
		id.String(), t.Name, t.Slug, t.Description, t.IconURL, t.LogoURL, t.Category, t.Type,
		t.OfficialWebsite, t.Documentation, t.ProficiencyLevel, t.YearsOfExperience,
		t.IsActive, t.IsFeatured, t.DisplayOrder, t.Color,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return technology.Technology{}, technology.ErrTechnologyNameExists
		}
		return technology.Technology{}, err
	}
	return created, nil
}

// GetByID implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) GetByID(ctx context.Context, id string) (technology.Technology, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetBySlug implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) GetBySlug(ctx context.Context, slug string) (technology.Technology, error) {
	return r.getOne(ctx, `slug = $1`, slug)
}

func (r *technologyRepositoryImpl) getOne(ctx context.Context, cond string, arg string) (technology.Technology, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanTechnology(q.QueryRow(ctx, `SELECT `+technologyColumns+` FROM technologies WHERE `+cond, arg))
	if err != nil {
		if isNoRows(err) {
			return technology.Technology{}, technology.ErrTechnologyNotFound
		}
		return technology.Technology{}, err
	}
	return found, nil
}

// Update implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) Update(ctx context.Context, id string, req technology.UpdateTechnologyRequest) (technology.Technology, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IconURL != nil {
		updates["icon_url"] = *req.IconURL
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.OfficialWebsite != nil {
		updates["official_website"] = *req.OfficialWebsite
	}
	if req.Documentation != nil {
		updates["documentation"] = *req.Documentation
	}
	if req.ProficiencyLevel != nil {
		updates["proficiency_level"] = *req.ProficiencyLevel
	}
	if req.YearsOfExperience != nil {
		updates["years_of_experience"] = *req.YearsOfExperience
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.Color != nil {
		updates["color"] = *req.Color
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

	query := fmt.Sprintf(`UPDATE technologies SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, technologyColumns)

	updated, err := scanTechnology(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return technology.Technology{}, technology.ErrTechnologyNotFound
		}
		if isUniqueViolation(err) {
			return technology.Technology{}, technology.ErrTechnologyNameExists
		}
		return technology.Technology{}, err
	}
	return updated, nil
}

// Delete implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM technologies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return technology.ErrTechnologyNotFound
	}
	return nil
}

// List implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) List(ctx context.Context, filter technology.TechnologyFilter) ([]technology.Technology, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("category", filter.Category).
		EqString("type", filter.Type).
		EqString("proficiency_level", filter.ProficiencyLevel).
		EqBool("is_featured", filter.IsFeatured).
		EqBool("is_active", filter.IsActive).
		Search(filter.Search, "name", "description")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM technologies `+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count technologies: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`SELECT %s FROM technologies %s ORDER BY %s, name ASC %s`,
		technologyColumns, where.SQL(), filter.OrderBy(technologySortColumns, "order"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list technologies: %w", err)
	}
	techs, err := collectTechnologies(rows)
	if err != nil {
		return nil, 0, err
	}
	return techs, total, nil
}

// ListFeatured implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) ListFeatured(ctx context.Context, limit int) ([]technology.Technology, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + technologyColumns + `
		FROM technologies
		WHERE is_featured = TRUE AND is_active = TRUE
		ORDER BY display_order ASC, name ASC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectTechnologies(rows)
}

// ListByCategory implements technology.TechnologyRepository.
func (r *technologyRepositoryImpl) ListByCategory(ctx context.Context, category string) ([]technology.Technology, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + technologyColumns + `
		FROM technologies
		WHERE category = $1 AND is_active = TRUE
		ORDER BY display_order ASC, name ASC
	`
	rows, err := q.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	return collectTechnologies(rows)
}
