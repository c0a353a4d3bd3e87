package foundry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	httpx "github.com/raster-foundry/raster-foundry-go-client/internal/http"
)

// ErrNotFound is returned when the server has no resource with the
// requested identifier.
//
// Example:
//
//	_, err := client.GetDatasource(ctx, id)
//	if errors.Is(err, foundry.ErrNotFound) {
//	    fmt.Println("datasource was deleted")
//	}
var ErrNotFound = errors.New("resource not found")

// ValidationError indicates the server rejected a request because its
// fields were malformed.
type ValidationError struct {
	// Message is the server's description of what was wrong.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// AuthError indicates a credential problem: an invalid or expired token,
// or a refresh token the server refused to exchange.
type AuthError struct {
	// Message describes the credential failure.
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return "authentication failed: " + e.Message
}

// apiMessage is the error envelope the server uses for failed requests.
type apiMessage struct {
	Message string `json:"message"`
}

// classify maps transport-level status errors onto the client's error
// taxonomy. Errors that are not *httpx.StatusError (network failures,
// cancellation) pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var se *httpx.StatusError
	if !errors.As(err, &se) {
		return err
	}

	msg := serverMessage(se)

	switch se.Code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Message: msg}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Message: msg}
	default:
		return fmt.Errorf("unexpected response: %w", se)
	}
}

// serverMessage extracts a human-readable message from an error response
// body, falling back to the raw body or status text.
func serverMessage(se *httpx.StatusError) string {
	var envelope apiMessage
	if err := json.Unmarshal(se.Body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if body := strings.TrimSpace(string(se.Body)); body != "" {
		return body
	}
	return se.Error()
}
