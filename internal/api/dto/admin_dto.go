package dto

// StatusUpdateRequest payload for PATCH /api/admin/registrations/:id/status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PageResponse is one page of an admin table.
type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
