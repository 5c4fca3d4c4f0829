package pagination

import "gorm.io/gorm"

// Pagination is the shared offset/limit query binding for list endpoints.
type Pagination struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit,default=50"`
}

const maxLimit = 500

// Normalize clamps limit into [1, maxLimit] and offset to >= 0.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Apply adds offset/limit to the statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return stmt.Offset(p.Offset).Limit(p.Limit)
}
