package query

const (
	DefaultPostLimit     = 20
	DefaultLocationLimit = 50
)

// Pagination is the outermost LIMIT/OFFSET clause, applied after all
// filtering and aggregation.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit plus either offset or a 1-based page number
// (page wins when both are present). Non-numeric or non-positive limits fall
// back to the default; negative offsets clamp to zero, so nothing unclamped
// ever reaches the engine.
func ParsePagination(p Params, defaultLimit int) Pagination {
	limit, ok := p.Int("limit")
	if !ok || limit <= 0 {
		limit = defaultLimit
	}

	offset := 0
	if page, ok := p.Int("page"); ok && page >= 1 {
		offset = (page - 1) * limit
	} else if v, ok := p.Int("offset"); ok && v > 0 {
		offset = v
	}

	return Pagination{Limit: limit, Offset: offset}
}
