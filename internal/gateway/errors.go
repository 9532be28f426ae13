package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Failure classes for remote calls. Every error the gateway returns is
// either an *APIError with one of these codes or a wrapped local error.
const (
	CodeAuth       = "auth"
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeRemote     = "remote"
	CodeTransport  = "transport"
)

// APIError is a classified failure from the remote API or the transport
// beneath it.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a remote not-found failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeNotFound
}

// apiFailure is the error body shape the API uses. Some endpoints populate
// "error", others "message"; either may be absent.
type apiFailure struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func classify(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return CodeAuth
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeRemote
	}
}

func decodeFailure(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status: resp.StatusCode,
		Code:   classify(resp.StatusCode),
	}
	var body apiFailure
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else if body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

const fallbackMessage = "Request failed"

// Normalize maps any gateway failure to a single user-facing string. It
// prefers the structured message from the response body, then the status
// line, then a generic fallback. It never returns an empty string.
func Normalize(err error) string {
	if err == nil {
		return fallbackMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Status > 0 {
			if text := http.StatusText(apiErr.Status); text != "" {
				return fmt.Sprintf("%d %s", apiErr.Status, text)
			}
			return fmt.Sprintf("request failed with status %d", apiErr.Status)
		}
		return fallbackMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
