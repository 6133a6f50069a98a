package option

import (
	"github.com/freeenergie/parrainage/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a gorm statement before execution.
type Option interface {
	Apply(*gorm.DB) *gorm.DB
}

type paginationOption struct {
	page pagination.Pagination
}

// ApplyPagination applies the cursor filter and fetches one row past the page
// size so the caller can detect whether more rows exist. The tuple comparison
// is spelled out so it works on every supported dialect.
func ApplyPagination(page pagination.Pagination) Option {
	return paginationOption{page: page}
}

func (o paginationOption) Apply(stmt *gorm.DB) *gorm.DB {
	size := o.page.PageSize
	if size <= 0 {
		size = 10
	}
	if size > 250 {
		size = 250
	}

	if o.page.PageToken != "" {
		if cursor, err := pagination.DecodeCursor(o.page.PageToken); err == nil && cursor.ID != "" {
			stmt = stmt.Where(
				"created_at < ? OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
			)
		}
	}

	return stmt.Limit(size + 1)
}
