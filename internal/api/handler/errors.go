package handler

import "github.com/horarios/admin-console/internal/core/domain"

// ErrorBody is the envelope every failed console request is rendered with.
type ErrorBody struct {
	Error domain.UiError `json:"error"`
}
