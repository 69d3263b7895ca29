package strapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericErrorMessage is reported when the backend gives nothing more specific.
const GenericErrorMessage = "An unexpected error occurred"

var (
	ErrNoFile             = errors.New("upload returned no file")
	ErrDeleteNotConfirmed = errors.New("delete was not confirmed with 204 No Content")
	ErrMissingToken       = errors.New("no bearer token in context")
	ErrEmptyResponse      = errors.New("empty response body")
)

// APIError is a non-2xx answer from the CMS.
type APIError struct {
	Status   int
	Resource string
	Message  string
	Fields   []FieldError
}

// FieldError is one field-level validation message.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strapi %s: %d %s", e.Resource, e.Status, e.Message)
}

// Unauthorized reports whether the CMS rejected the token.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Message returns the most specific user-facing message carried by err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}

type errorDetails struct {
	Errors []struct {
		Path    []any  `json:"path"`
		Message string `json:"message"`
	} `json:"errors"`
}

type errorBody struct {
	Error *struct {
		Status  int             `json:"status"`
		Name    string          `json:"name"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	// users-permissions v3 style: message is either a string or nested message lists
	Message json.RawMessage `json:"message"`
}

// newAPIError builds an APIError, extracting messages in order of specificity:
// field-level validation messages joined by ", ", then the top-level message,
// then GenericErrorMessage.
func newAPIError(resource string, status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Resource: resource}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = GenericErrorMessage
		return apiErr
	}

	if parsed.Error != nil {
		apiErr.Fields = fieldErrors(parsed.Error.Details)
		switch {
		case len(apiErr.Fields) > 0:
			msgs := make([]string, 0, len(apiErr.Fields))
			for _, f := range apiErr.Fields {
				msgs = append(msgs, f.Message)
			}
			apiErr.Message = strings.Join(msgs, ", ")
		case parsed.Error.Message != "":
			apiErr.Message = parsed.Error.Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = legacyMessage(parsed.Message)
	}
	if apiErr.Message == "" {
		apiErr.Message = GenericErrorMessage
	}
	return apiErr
}

func fieldErrors(raw json.RawMessage) []FieldError {
	if len(raw) == 0 {
		return nil
	}
	var details errorDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil
	}
	var out []FieldError
	for _, e := range details.Errors {
		if e.Message == "" {
			continue
		}
		parts := make([]string, 0, len(e.Path))
		for _, p := range e.Path {
			parts = append(parts, fmt.Sprint(p))
		}
		out = append(out, FieldError{Path: strings.Join(parts, "."), Message: e.Message})
	}
	return out
}

func legacyMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var nested []struct {
		Messages []struct {
			Message string `json:"message"`
		} `json:"messages"`
	}
	if json.Unmarshal(raw, &nested) != nil {
		return ""
	}
	var msgs []string
	for _, n := range nested {
		for _, m := range n.Messages {
			if m.Message != "" {
				msgs = append(msgs, m.Message)
			}
		}
	}
	return strings.Join(msgs, ", ")
}
