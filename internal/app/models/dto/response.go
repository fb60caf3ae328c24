package dto

import "net/http"

// APIResponse is the envelope every endpoint answers with, success or error.
type APIResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewSuccess builds a 200 envelope.
func NewSuccess(message string, data any) APIResponse {
	return APIResponse{Status: http.StatusOK, Message: message, Data: data}
}

// NewCreated builds a 201 envelope.
func NewCreated(message string, data any) APIResponse {
	return APIResponse{Status: http.StatusCreated, Message: message, Data: data}
}

// Paginated is one page of a filtered listing. TotalRecords counts matches
// before pagination; Data is never nil.
type Paginated[T any] struct {
	TotalRecords int64 `json:"totalRecords"`
	Data         []T   `json:"data"`
}

// NewPaginated normalizes an empty page to {0, []}.
func NewPaginated[T any](total int64, data []T) *Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return &Paginated[T]{TotalRecords: total, Data: data}
}
