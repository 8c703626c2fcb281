// Package dto contains request/response shapes for the HTTP API.
package dto

// IDResponse carries the identifier of a created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PageQuery is the standard pagination query.
type PageQuery struct {
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}
