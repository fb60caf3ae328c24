// Package query builds the filtered, joined, paginated list queries behind
// every listing endpoint. A Builder mirrors each predicate onto a data
// query and a count query so one page and its pre-pagination total always
// agree. Absent filter values are no-ops: only an actively supplied filter
// narrows results.
package query

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/pkg/helpers"
)

// Builder accumulates predicates over a data select and a count select.
type Builder struct {
	sel      squirrel.SelectBuilder
	count    squirrel.SelectBuilder
	sorts    map[string]string
	sortDef  string
	page     int
	limit    int
	sortBy   string
	sortDesc bool
}

// NewBuilder starts a builder from a data select and its matching count
// select. Both must already carry the same FROM/JOIN shape.
func NewBuilder(sel, count squirrel.SelectBuilder) *Builder {
	return &Builder{
		sel:      sel.PlaceholderFormat(squirrel.Dollar),
		count:    count.PlaceholderFormat(squirrel.Dollar),
		sortDesc: true,
	}
}

// Where applies a raw predicate to both queries.
func (b *Builder) Where(pred interface{}, args ...interface{}) *Builder {
	b.sel = b.sel.Where(pred, args...)
	b.count = b.count.Where(pred, args...)
	return b
}

// Equals filters on column = value.
func (b *Builder) Equals(column string, value interface{}) *Builder {
	return b.Where(squirrel.Eq{column: value})
}

// In filters on column membership. Empty lists match everything.
func (b *Builder) In(column string, values []string) *Builder {
	if len(values) == 0 {
		return b
	}
	return b.Where(squirrel.Eq{column: values})
}

// InIDs filters on id-column membership. Empty lists match everything.
func (b *Builder) InIDs(column string, ids []uuid.UUID) *Builder {
	if len(ids) == 0 {
		return b
	}
	return b.Where(squirrel.Eq{column: ids})
}

// escapeLike escapes LIKE wildcards in a user-supplied search term.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches the term as a case-insensitive substring of ANY of the
// given columns. An empty term matches everything.
func (b *Builder) Search(term string, columns ...string) *Builder {
	if term == "" || len(columns) == 0 {
		return b
	}
	pattern := "%" + escapeLike.Replace(term) + "%"
	or := make(squirrel.Or, 0, len(columns))
	for _, column := range columns {
		or = append(or, squirrel.ILike{column: pattern})
	}
	return b.Where(or)
}

// DateRange filters a timestamp column by a [min,max] epoch-millisecond
// pair. The max bound is end-of-day inclusive; a single value selects that
// whole day. Empty bounds match everything.
func (b *Builder) DateRange(column string, bounds []int64) *Builder {
	if len(bounds) == 0 {
		return b
	}
	start := helpers.EpochMillis(bounds[0])
	end := start
	if len(bounds) >= 2 {
		end = helpers.EpochMillis(bounds[1])
	}
	return b.Where(squirrel.And{
		squirrel.GtOrEq{column: start},
		squirrel.LtOrEq{column: helpers.EndOfDay(end)},
	})
}

// IntRange filters a numeric column or expression by a [min,max] pair. A
// negative bound leaves that side open; empty bounds match everything.
func (b *Builder) IntRange(expr string, bounds []int64) *Builder {
	if len(bounds) == 0 {
		return b
	}
	if bounds[0] >= 0 {
		b.Where(squirrel.Expr(expr+" >= ?", bounds[0]))
	}
	if len(bounds) >= 2 && bounds[1] >= 0 {
		b.Where(squirrel.Expr(expr+" <= ?", bounds[1]))
	}
	return b
}

// SortFields declares the API-name to column mapping for sortable fields
// and the fallback ORDER BY clause (normally most-recently-updated first).
// The mapping doubles as an allowlist against SQL injection.
func (b *Builder) SortFields(fields map[string]string, fallback string) *Builder {
	b.sorts = fields
	b.sortDef = fallback
	return b
}

// Paginate records the page window and sort. Page is 1-based; a zero limit
// returns every match. sortOrder follows the 1/-1 convention: positive
// sorts ascending, anything else descending.
func (b *Builder) Paginate(page, limit int, sortBy string, sortOrder int) *Builder {
	b.page = page
	b.limit = limit
	b.sortBy = sortBy
	b.sortDesc = sortOrder <= 0
	return b
}

// orderBy resolves the effective ORDER BY clause.
func (b *Builder) orderBy() string {
	if column, ok := b.sorts[b.sortBy]; ok {
		direction := "ASC"
		if b.sortDesc {
			direction = "DESC"
		}
		return column + " " + direction
	}
	return b.sortDef
}

// ToSelectSQL renders the data query with sort and pagination applied.
func (b *Builder) ToSelectSQL() (string, []interface{}, error) {
	sel := b.sel
	if clause := b.orderBy(); clause != "" {
		sel = sel.OrderBy(clause)
	}
	offset, limit := helpers.CalculateOffsetLimit(b.page, b.limit)
	if limit > 0 {
		sel = sel.Offset(offset).Limit(limit)
	}
	return sel.ToSql()
}

// ToCountSQL renders the count query, which ignores sort and pagination.
func (b *Builder) ToCountSQL() (string, []interface{}, error) {
	return b.count.ToSql()
}
