package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/award"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const awardColumns = `
	id, title, description, organization, category, year, date, image_url, certificate_url,
	verification_url, rank, is_active, display_order, created_at, updated_at`

var awardSortColumns = map[string]string{
	"year":       "year",
	"date":       "date",
	"title":      "title",
	"order":      "display_order",
	"created_at": "created_at",
}

type awardRepositoryImpl struct {
	db *database.DB
}

func NewAwardRepository(db *database.DB) award.AwardRepository {
	return &awardRepositoryImpl{db: db}
}

func scanAward(row pgx.Row) (award.Award, error) {
	var a award.Award
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Organization, &a.Category, &a.Year, &a.Date, &a.ImageURL,
		&a.CertificateURL, &a.VerificationURL, &a.Rank, &a.IsActive, &a.DisplayOrder, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func collectAwards(rows pgx.Rows) ([]award.Award, error) {
	defer rows.Close()

	awards := []award.Award{}
	for rows.Next() {
		a, err := scanAward(rows)
		if err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return awards, nil
}

// Create implements award.AwardRepository.
func (r *awardRepositoryImpl) Create(ctx context.Context, a award.Award) (award.Award, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return award.Award{}, fmt.Errorf("generate award id: %w", err)
	}

	query := `
		INSERT INTO awards (
			id, title, description, organization, category, year, date, image_url, certificate_url,
			verification_url, rank, is_active, display_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + awardColumns

	return scanAward(q.QueryRow(ctx, query,
		id.String(), a.Title, a.Description, a.Organization, a.Category, a.Year, a.Date, a.ImageURL,
		a.CertificateURL, a.VerificationURL, a.Rank, a.IsActive, a.DisplayOrder,
	))
}

// GetByID implements award.AwardRepository.
func (r *awardRepositoryImpl) GetByID(ctx context.Context, id string) (award.Award, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanAward(q.QueryRow(ctx, `SELECT `+awardColumns+` FROM awards WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return award.Award{}, award.ErrAwardNotFound
		}
		return award.Award{}, err
	}
	return found, nil
}

// Update implements award.AwardRepository.
func (r *awardRepositoryImpl) Update(ctx context.Context, id string, req award.UpdateAwardRequest) (award.Award, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Organization != nil {
		updates["organization"] = *req.Organization
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.ParsedDate != nil {
		updates["date"] = *req.ParsedDate
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.CertificateURL != nil {
		updates["certificate_url"] = *req.CertificateURL
	}
	if req.VerificationURL != nil {
		updates["verification_url"] = *req.VerificationURL
	}
	if req.Rank != nil {
		updates["rank"] = *req.Rank
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

	query := fmt.Sprintf(`UPDATE awards SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, awardColumns)

	updated, err := scanAward(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return award.Award{}, award.ErrAwardNotFound
		}
		return award.Award{}, err
	}
	return updated, nil
}

// Delete implements award.AwardRepository.
func (r *awardRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM awards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return award.ErrAwardNotFound
	}
	return nil
}

// List implements award.AwardRepository.
func (r *awardRepositoryImpl) List(ctx context.Context, filter award.AwardFilter) ([]award.Award, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("category", filter.Category).
		EqBool("is_active", filter.IsActive).
		Search(filter.Search, "title", "organization", "description")
	if filter.Year != nil {
		where.Eq("year", *filter.Year)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM awards `+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count awards: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`SELECT %s FROM awards %s ORDER BY %s NULLS LAST, display_order ASC %s`,
		awardColumns, where.SQL(), filter.OrderBy(awardSortColumns, "year"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list awards: %w", err)
	}
	awards, err := collectAwards(rows)
	if err != nil {
		return nil, 0, err
	}
	return awards, total, nil
}

// ListByYear implements award.AwardRepository.
func (r *awardRepositoryImpl) ListByYear(ctx context.Context, year int) ([]award.Award, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + awardColumns + `
		FROM awards
		WHERE year = $1 AND is_active = TRUE
		ORDER BY date DESC NULLS LAST, display_order ASC
	`
	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	return collectAwards(rows)
}

// CountByCategory implements award.AwardRepository.
func (r *awardRepositoryImpl) CountByCategory(ctx context.Context) ([]award.CategoryCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT category, COUNT(*)
		FROM awards
		WHERE is_active = TRUE
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []award.CategoryCount{}
	for rows.Next() {
		var c award.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountByYear implements award.AwardRepository.
func (r *awardRepositoryImpl) CountByYear(ctx context.Context) ([]award.YearCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT year, COUNT(*)
		FROM awards
		WHERE is_active = TRUE AND year IS NOT NULL
		GROUP BY year
		ORDER BY year DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []award.YearCount{}
	for rows.Next() {
		var c award.YearCount
		if err := rows.Scan(&c.Year, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
