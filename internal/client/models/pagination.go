package models

// Pagination describes one page of a list endpoint.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// HasNextPage reports whether another page follows, falling back to the page
// counters when the backend omits the flag.
func (p Pagination) HasNextPage() bool {
	return p.HasNext || p.Page < p.TotalPages
}

func (p Pagination) HasPrevPage() bool {
	return p.HasPrev || p.Page > 1
}

// Page is a decoded list response.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
