package api

import (
	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/bookzapp/bookz-server/internal/errors"
)

// APIError is the error envelope returned by every endpoint. It
// implements huma.StatusError so domain errors pass through huma with
// the right status code.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Detail  string `json:"detail" doc:"Human-readable error message"`
	Code    string `json:"error" doc:"Machine-readable error code"`
	Path    string `json:"path,omitempty" doc:"Request path that produced the error"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Detail
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to emit the envelope above.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewErrorWithContext = func(ctx huma.Context, status int, message string, errs ...error) huma.StatusError {
		apiErr := newAPIError(status, message, errs...)
		if ctx != nil {
			apiErr.Path = ctx.URL().Path
		}
		return apiErr
	}
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		return newAPIError(status, message, errs...)
	}
}

func newAPIError(status int, message string, errs ...error) *APIError {
	for _, err := range errs {
		var domainErr *domainerrors.Error
		if domainerrors.As(err, &domainErr) {
			return &APIError{
				status:  domainErr.HTTPStatus(),
				Detail:  domainErr.Message,
				Code:    string(domainErr.Code),
				Details: domainErr.Details,
			}
		}
	}

	return &APIError{
		status: status,
		Detail: message,
		Code:   string(statusToCode(status)),
	}
}

// statusToCode maps plain HTTP statuses to domain error codes for
// errors that did not originate in the domain (body parse failures,
// schema validation, unknown routes).
func statusToCode(status int) domainerrors.Code {
	switch status {
	case 404:
		return domainerrors.CodeNotFound
	case 409:
		return domainerrors.CodeConflict
	case 400, 422:
		return domainerrors.CodeValidation
	default:
		return domainerrors.CodeInternal
	}
}
