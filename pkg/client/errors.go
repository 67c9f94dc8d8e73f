package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoRows is returned by Query.Single when no row matched.
var ErrNoRows = errors.New("no rows")

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// noRowsCode is PostgREST's code for a singular response with zero rows.
const noRowsCode = "PGRST116"

// HTTPError represents a non-2xx HTTP response from the API.
// Code carries the provider error code (a SQLSTATE or PGRST code) when present.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsConflict reports whether err is a unique-constraint violation.
func IsConflict(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code == uniqueViolation || httpErr.StatusCode == http.StatusConflict
	}
	return false
}

func isNoRows(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code == noRowsCode || httpErr.StatusCode == http.StatusNotAcceptable
	}
	return false
}

// decodeError builds an HTTPError from a PostgREST or auth error body.
func decodeError(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Code             json.RawMessage `json:"code"`
		Message          string          `json:"message"`
		Details          string          `json:"details"`
		Msg              string          `json:"msg"`
		Error            string          `json:"error"`
		ErrorDescription string          `json:"error_description"`
	}
	if json.Unmarshal(respBody, &apiErr) != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	e := &HTTPError{StatusCode: resp.StatusCode, Details: apiErr.Details}
	// PostgREST sends code as a string, the auth API as a number.
	var code string
	if json.Unmarshal(apiErr.Code, &code) == nil {
		e.Code = code
	}
	for _, m := range []string{apiErr.Message, apiErr.Msg, apiErr.ErrorDescription, apiErr.Error} {
		if m != "" {
			e.Message = m
			break
		}
	}
	if e.Message == "" {
		e.Message = string(respBody)
	}
	return e
}
