package models

// Page is one slice of an id-ordered listing together with the total count.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	PageToken  int `json:"page_token"`
	PageSize   int `json:"page_size"`
}
