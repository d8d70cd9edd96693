package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/testimonial"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const testimonialSelect = `
	SELECT t.id, t.client_name, t.client_position, t.client_company, t.client_avatar, t.company_logo,
		t.testimonial, t.rating, t.project_id, p.name, p.slug, t.service, t.date_received,
		t.location_country, t.location_city, t.is_verified, t.is_featured, t.is_active, t.display_order,
		t.linkedin_url, t.website_url, t.created_at, t.updated_at
	FROM testimonials t
	LEFT JOIN products p ON p.id = t.project_id`

var testimonialSortColumns = map[string]string{
	"date_received": "t.date_received",
	"rating":        "t.rating",
	"order":         "t.display_order",
	"client_name":   "t.client_name",
	"created_at":    "t.created_at",
}

type testimonialRepositoryImpl struct {
	db *database.DB
}

func NewTestimonialRepository(db *database.DB) testimonial.TestimonialRepository {
	return &testimonialRepositoryImpl{db: db}
}

func scanTestimonial(row pgx.Row) (testimonial.Testimonial, error) {
	var t testimonial.Testimonial
	err := row.Scan(
		&t.ID, &t.ClientName, &t.ClientPosition, &t.ClientCompany, &t.ClientAvatar, &t.CompanyLogo,
		&t.Testimonial, &t.Rating, &t.ProjectID, &t.ProjectName, &t.ProjectSlug, &t.Service, &t.DateReceived,
		&t.Location.Country, &t.Location.City, &t.IsVerified, &t.IsFeatured, &t.IsActive, &t.DisplayOrder,
		&t.LinkedinURL, &t.WebsiteURL, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func collectTestimonials(rows pgx.Rows) ([]testimonial.Testimonial, error) {
	defer rows.Close()

	list := []testimonial.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Create implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) Create(ctx context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return testimonial.Testimonial{}, fmt.Errorf("generate testimonial id: %w", err)
	}

	query := `
		INSERT INTO testimonials (
			id, client_name, client_position, client_company, client_avatar, company_logo, testimonial,
			rating, project_id, service, date_received, location_country, location_city, is_verified,
			is_featured, is_active, display_order, linkedin_url, website_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = q.Exec(ctx, query,
		id.String(), t.ClientName, t.ClientPosition, t.ClientCompany, t.ClientAvatar, t.CompanyLogo, t.Testimonial,
		t.Rating, t.ProjectID, t.Service, t.DateReceived, t.Location.Country, t.Location.City, t.IsVerified,
		t.IsFeatured, t.IsActive, t.DisplayOrder, t.LinkedinURL, t.WebsiteURL,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return testimonial.Testimonial{}, testimonial.ErrProjectNotFound
		}
		return testimonial.Testimonial{}, err
	}
	return r.GetByID(ctx, id.String())
}

// GetByID implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) GetByID(ctx context.Context, id string) (testimonial.Testimonial, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanTestimonial(q.QueryRow(ctx, testimonialSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return testimonial.Testimonial{}, testimonial.ErrTestimonialNotFound
		}
		return testimonial.Testimonial{}, err
	}
	return found, nil
}

// Update implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) Update(ctx context.Context, id string, req testimonial.UpdateTestimonialRequest) (testimonial.Testimonial, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.ClientName != nil {
		updates["client_name"] = *req.ClientName
	}
	if req.ClientPosition != nil {
		updates["client_position"] = *req.ClientPosition
	}
	if req.ClientCompany != nil {
		updates["client_company"] = *req.ClientCompany
	}
	if req.ClientAvatar != nil {
		updates["client_avatar"] = *req.ClientAvatar
	}
	if req.CompanyLogo != nil {
		updates["company_logo"] = *req.CompanyLogo
	}
	if req.Testimonial != nil {
		updates["testimonial"] = *req.Testimonial
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.ProjectID != nil {
		updates["project_id"] = *req.ProjectID
	}
	if req.Service != nil {
		updates["service"] = *req.Service
	}
	if req.ParsedDateReceived != nil {
		updates["date_received"] = *req.ParsedDateReceived
	}
	if req.Location != nil {
		updates["location_country"] = req.Location.Country
		updates["location_city"] = req.Location.City
	}
	if req.IsVerified != nil {
		updates["is_verified"] = *req.IsVerified
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
	if req.LinkedinURL != nil {
		updates["linkedin_url"] = *req.LinkedinURL
	}
	if req.WebsiteURL != nil {
		updates["website_url"] = *req.WebsiteURL
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

	query := fmt.Sprintf(`UPDATE testimonials SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argIdx)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return testimonial.Testimonial{}, testimonial.ErrProjectNotFound
		}
		return testimonial.Testimonial{}, err
	}
	if tag.RowsAffected() == 0 {
		return testimonial.Testimonial{}, testimonial.ErrTestimonialNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return testimonial.ErrTestimonialNotFound
	}
	return nil
}

// List implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) List(ctx context.Context, filter testimonial.TestimonialFilter) ([]testimonial.Testimonial, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("t.service", filter.Service).
		EqString("t.project_id", filter.ProjectID).
		EqBool("t.is_verified", filter.IsVerified).
		EqBool("t.is_featured", filter.IsFeatured).
		EqBool("t.is_active", filter.IsActive).
		Search(filter.Search, "t.client_name", "t.client_company", "t.testimonial")
	if filter.MinRating != nil {
		where.Raw(fmt.Sprintf("t.rating >= %d", *filter.MinRating))
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials t `+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count testimonials: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`%s %s ORDER BY %s, t.date_received DESC %s`,
		testimonialSelect, where.SQL(), filter.OrderBy(testimonialSortColumns, "order"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list testimonials: %w", err)
	}
	list, err := collectTestimonials(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListFeatured implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) ListFeatured(ctx context.Context, limit int) ([]testimonial.Testimonial, error) {
	q := GetQuerier(ctx, r.db)

	query := testimonialSelect + `
		WHERE t.is_featured = TRUE AND t.is_active = TRUE AND t.is_verified = TRUE
		ORDER BY t.display_order ASC, t.date_received DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectTestimonials(rows)
}

// ListByMinRating implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) ListByMinRating(ctx context.Context, rating int) ([]testimonial.Testimonial, error) {
	q := GetQuerier(ctx, r.db)

	query := testimonialSelect + `
		WHERE t.rating >= $1 AND t.is_active = TRUE
		ORDER BY t.rating DESC, t.date_received DESC
	`
	rows, err := q.Query(ctx, query, rating)
	if err != nil {
		return nil, err
	}
	return collectTestimonials(rows)
}

// CountByRating implements testimonial.TestimonialRepository.
func (r *testimonialRepositoryImpl) CountByRating(ctx context.Context) ([]testimonial.RatingCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT rating, COUNT(*)
		FROM testimonials
		WHERE is_active = TRUE
		GROUP BY rating
		ORDER BY rating DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []testimonial.RatingCount{}
	for rows.Next() {
		var c testimonial.RatingCount
		if err := rows.Scan(&c.Rating, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
