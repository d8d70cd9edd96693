// Package listing is the shared filter/sort/paginate builder behind every
// list endpoint.
package listing

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // asc, desc
	Search    string `json:"search"`
}

// FromRequest reads page, limit, sort_by, sort_order and search from the
// query string. Unparseable numbers are left at zero for Validate to default.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	p := Params{
		SortBy:    strings.TrimSpace(q.Get("sort_by")),
		SortOrder: strings.ToLower(strings.TrimSpace(q.Get("sort_order"))),
		Search:    strings.TrimSpace(q.Get("search")),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = v
	}
	return p
}

// Validate applies defaults and checks the sort key against sortable.
func (p *Params) Validate(sortable []string, defaultSort, defaultOrder string) error {
	var errs validator.ValidationErrors

	if p.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if p.Page == 0 {
		p.Page = DefaultPage
	}

	if p.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not exceed %d", MaxLimit),
		})
	}

	if p.SortBy != "" {
		if !validator.IsInSlice(p.SortBy, sortable) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: " + strings.Join(sortable, ", "),
			})
		}
	} else {
		p.SortBy = defaultSort
	}

	if p.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(p.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		p.SortOrder = defaultOrder
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// OrderBy maps SortBy through the allowed column whitelist. Unknown keys fall
// back to defaultKey. Extra tie-breakers may be appended by the caller.
func (p Params) OrderBy(allowed map[string]string, defaultKey string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	dir := "DESC"
	if strings.ToLower(p.SortOrder) == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

// Where accumulates AND-ed predicates with positional placeholders.
type Where struct {
	clauses []string
	args    []interface{}
}

func NewWhere() *Where {
	return &Where{}
}

func (w *Where) placeholder(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// Eq adds `col = value`.
func (w *Where) Eq(col string, v interface{}) *Where {
	w.clauses = append(w.clauses, col+" = "+w.placeholder(v))
	return w
}

// EqString adds `col = value` when value is non-nil and non-empty.
func (w *Where) EqString(col string, v *string) *Where {
	if v == nil || *v == "" {
		return w
	}
	return w.Eq(col, *v)
}

// EqBool adds `col = value` when value is non-nil.
func (w *Where) EqBool(col string, v *bool) *Where {
	if v == nil {
		return w
	}
	return w.Eq(col, *v)
}

// Gte adds `col >= value` when value is non-nil and non-empty.
func (w *Where) Gte(col string, v *string) *Where {
	if v == nil || *v == "" {
		return w
	}
	w.clauses = append(w.clauses, col+" >= "+w.placeholder(*v))
	return w
}

// Lte adds `col <= value` when value is non-nil and non-empty.
func (w *Where) Lte(col string, v *string) *Where {
	if v == nil || *v == "" {
		return w
	}
	w.clauses = append(w.clauses, col+" <= "+w.placeholder(*v))
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search adds a case-insensitive substring match across cols. The term is
// matched literally, so % and _ in it are not wildcards.
func (w *Where) Search(term string, cols ...string) *Where {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return w
	}
	ph := w.placeholder("%" + likeEscaper.Replace(term) + "%")
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE " + ph + ` ESCAPE '\'`
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
	return w
}

// Raw adds a literal predicate without arguments.
func (w *Where) Raw(clause string) *Where {
	w.clauses = append(w.clauses, clause)
	return w
}

// SQL renders "WHERE ..." or an empty string.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *Where) Args() []interface{} {
	out := make([]interface{}, len(w.args))
	copy(out, w.args)
	return out
}

// Next is the index of the next free placeholder.
func (w *Where) Next() int {
	return len(w.args) + 1
}

// Paginate returns "LIMIT $n OFFSET $n+1" and the full argument list.
func (w *Where) Paginate(p Params) (string, []interface{}) {
	next := w.Next()
	args := append(w.Args(), p.Limit, p.Offset())
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", next, next+1), args
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   *int  `json:"next_page,omitempty"`
	PrevPage   *int  `json:"prev_page,omitempty"`
}

func BuildMeta(total int64, p Params) Meta {
	totalPages := 0
	if total > 0 && p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	meta := Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
	if meta.HasNext {
		n := p.Page + 1
		meta.NextPage = &n
	}
	if meta.HasPrev {
		prev := p.Page - 1
		meta.PrevPage = &prev
	}
	return meta
}

// Showing renders "Showing X-Y of Z".
func (m Meta) Showing(count int) string {
	if m.Total == 0 || count == 0 {
		return fmt.Sprintf("Showing 0 of %d", m.Total)
	}
	from := (m.Page-1)*m.Limit + 1
	return fmt.Sprintf("Showing %d-%d of %d", from, from+count-1, m.Total)
}
