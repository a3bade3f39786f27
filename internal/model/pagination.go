package model

// PageMeta is the pagination block of listing responses.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Page is a paginated listing result.
type Page[T any] struct {
	Meta PageMeta `json:"meta"`
	Data []T      `json:"data"`
}
