package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const contactSelect = `
	SELECT c.id, c.name, c.email, c.phone, c.company, c.subject, c.message, c.service, c.budget,
		c.timeline, c.status, c.priority, c.assigned_to, c.source, c.ip_address, c.user_agent,
		c.created_at, c.updated_at, u.name
	FROM contacts c
	LEFT JOIN users u ON u.id = c.assigned_to`

var contactSortColumns = map[string]string{
	"created_at": "c.created_at",
	"name":       "c.name",
	"status":     "c.status",
	"priority":   "c.priority",
}

// Columns CountBy may group on.
var contactGroupColumns = map[string]bool{
	"status":   true,
	"priority": true,
	"service":  true,
	"source":   true,
}

type contactRepositoryImpl struct {
	db *database.DB
}

func NewContactRepository(db *database.DB) contact.ContactRepository {
	return &contactRepositoryImpl{db: db}
}

func scanContact(row pgx.Row) (contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Subject, &c.Message, &c.Service, &c.Budget,
		&c.Timeline, &c.Status, &c.Priority, &c.AssignedTo, &c.Source, &c.IPAddress, &c.UserAgent,
		&c.CreatedAt, &c.UpdatedAt, &c.AssigneeName,
	)
	return c, err
}

func collectContacts(rows pgx.Rows) ([]contact.Contact, error) {
	defer rows.Close()

	contacts := []contact.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Create implements contact.ContactRepository.
func (r *contactRepositoryImpl) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return contact.Contact{}, fmt.Errorf("generate contact id: %w", err)
	}

	query := `
		INSERT INTO contacts (
			id, name, email, phone, company, subject, message, service, budget, timeline,
			status, priority, source, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id.String(), c.Name, c.Email, c.Phone, c.Company, c.Subject, c.Message, c.Service, c.Budget, c.Timeline,
		c.Status, c.Priority, c.Source, c.IPAddress, c.UserAgent,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return contact.Contact{}, err
	}
	return c, nil
}

// GetByID implements contact.ContactRepository.
func (r *contactRepositoryImpl) GetByID(ctx context.Context, id string) (contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanContact(q.QueryRow(ctx, contactSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return contact.Contact{}, contact.ErrContactNotFound
		}
		return contact.Contact{}, err
	}
	return found, nil
}

// Update implements contact.ContactRepository.
func (r *contactRepositoryImpl) Update(ctx context.Context, id string, req contact.UpdateContactRequest) (contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
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

	query := fmt.Sprintf(`UPDATE contacts SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argIdx)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return contact.Contact{}, contact.ErrAssigneeNotFound
		}
		return contact.Contact{}, err
	}
	if tag.RowsAffected() == 0 {
		return contact.Contact{}, contact.ErrContactNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete implements contact.ContactRepository.
func (r *contactRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return contact.ErrContactNotFound
	}
	return nil
}

// List implements contact.ContactRepository.
func (r *contactRepositoryImpl) List(ctx context.Context, filter contact.ContactFilter) ([]contact.Contact, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("c.status", filter.Status).
		EqString("c.priority", filter.Priority).
		EqString("c.service", filter.Service).
		EqString("c.assigned_to", filter.AssignedTo).
		Search(filter.Search, "c.name", "c.email", "c.subject", "c.message")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts c `+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`%s %s ORDER BY %s %s`,
		contactSelect, where.SQL(), filter.OrderBy(contactSortColumns, "created_at"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	contacts, err := collectContacts(rows)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// AddNote implements contact.ContactRepository.
func (r *contactRepositoryImpl) AddNote(ctx context.Context, contactID, note, addedBy string) (contact.Note, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contact_notes (contact_id, note, added_by)
		VALUES ($1, $2, $3)
		RETURNING id, note, added_by, added_at
	`
	var n contact.Note
	err := q.QueryRow(ctx, query, contactID, note, addedBy).Scan(&n.ID, &n.Note, &n.AddedBy, &n.AddedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return contact.Note{}, contact.ErrContactNotFound
		}
		return contact.Note{}, err
	}

	if _, err := q.Exec(ctx, `UPDATE contacts SET updated_at = NOW() WHERE id = $1`, contactID); err != nil {
		return contact.Note{}, err
	}
	return n, nil
}

// ListNotes implements contact.ContactRepository.
func (r *contactRepositoryImpl) ListNotes(ctx context.Context, contactID string) ([]contact.Note, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT n.id, n.note, n.added_by, u.name, n.added_at
		FROM contact_notes n
		LEFT JOIN users u ON u.id = n.added_by
		WHERE n.contact_id = $1
		ORDER BY n.added_at ASC, n.id ASC
	`
	rows, err := q.Query(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []contact.Note{}
	for rows.Next() {
		var n contact.Note
		if err := rows.Scan(&n.ID, &n.Note, &n.AddedBy, &n.AddedByName, &n.AddedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Assign implements contact.ContactRepository.
func (r *contactRepositoryImpl) Assign(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE contacts SET assigned_to = $1, updated_at = NOW() WHERE id = $2`, userID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return contact.ErrAssigneeNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return contact.ErrContactNotFound
	}
	return nil
}

// CountBy implements contact.ContactRepository.
func (r *contactRepositoryImpl) CountBy(ctx context.Context, column string) ([]contact.CountBy, error) {
	if !contactGroupColumns[column] {
		return nil, fmt.Errorf("cannot group contacts by %q", column)
	}
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT COALESCE(%[1]s, 'unspecified'), COUNT(*)
		FROM contacts
		GROUP BY %[1]s
		ORDER BY COUNT(*) DESC
	`, column)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []contact.CountBy{}
	for rows.Next() {
		var c contact.CountBy
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Recent implements contact.ContactRepository.
func (r *contactRepositoryImpl) Recent(ctx context.Context, limit int) ([]contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, contactSelect+` ORDER BY c.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}
