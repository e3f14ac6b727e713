package core

import "math"

const (
	defaultPage  = 1
	defaultLimit = 10
)

// PageQuery carries the page/limit parameters of a list request.
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Clean applies the default page and limit when the caller omitted them or
// supplied non-positive values.
func (q *PageQuery) Clean() {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page is the response envelope of all paginated list endpoints.
type Page[T any] struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Data        []T   `json:"data"`
}

// NewPage computes the page metadata for `data`, a slice of the full
// collection at `q`. A page past the end of the collection yields an empty
// Data slice, not an error.
func NewPage[T any](data []T, total int64, q PageQuery) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		TotalItems:  total,
		TotalPages:  int(math.Ceil(float64(total) / float64(q.Limit))),
		CurrentPage: q.Page,
		Data:        data,
	}
}
