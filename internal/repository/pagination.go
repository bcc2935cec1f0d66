package repository

const (
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultOffset = 0
)

type PageRequest struct {
	Limit  int
	Offset int
}

// PageResult carries one page plus a has-more flag; list queries fetch
// limit+1 rows so HasMore never costs a COUNT.
type PageResult[T any] struct {
	Items   []T
	Limit   int
	Offset  int
	HasMore bool
}

// normalizePageRequest backstops programmatic callers that pass a zero or
// out-of-range PageRequest. The HTTP boundary validates and rejects bad
// client input before it reaches here.
func normalizePageRequest(in PageRequest) PageRequest {
	limit := in.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = DefaultOffset
	}
	return PageRequest{Limit: limit, Offset: offset}
}

func pageFromRows[T any](rows []T, req PageRequest) PageResult[T] {
	hasMore := len(rows) > req.Limit
	if hasMore {
		rows = rows[:req.Limit]
	}
	return PageResult[T]{Items: rows, Limit: req.Limit, Offset: req.Offset, HasMore: hasMore}
}
