package inbound

// PageQuery carries 1-based pagination parameters as they arrive on the wire.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize clamps the query to sane bounds.
func (q PageQuery) Normalize(defaultLimit, maxLimit int) (page, limit int) {
	page = q.Page
	if page < 1 {
		page = 1
	}
	limit = q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// Offset returns the skip count for the normalized page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// PageMeta is the pagination envelope returned alongside every list.
type PageMeta struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Count      int `json:"count"`
	TotalItems int `json:"totalItems"`
}

func NewPageMeta(page, limit, count, totalItems int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return PageMeta{
		Current:    page,
		Total:      totalPages,
		Count:      count,
		TotalItems: totalItems,
	}
}
