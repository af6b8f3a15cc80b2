// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeStatus
	ErrTypeNotFound
	ErrTypeInvalidResponse
	ErrTypeInvalidRequest
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeStatus:
		return "status"
	case ErrTypeNotFound:
		return "not_found"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// ClientError represents a failed backend call.
type ClientError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches another ClientError of the same type, so the sentinels below
// work with errors.Is.
func (e *ClientError) Is(target error) bool {
	var t *ClientError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

// Sentinel errors for easy checking.
var (
	ErrConnection      = &ClientError{Type: ErrTypeConnection, Message: "backend unreachable"}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrCanceled        = &ClientError{Type: ErrTypeCanceled, Message: "request canceled"}
	ErrNotFound        = &ClientError{Type: ErrTypeNotFound, Message: "not found"}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "invalid response"}
)

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConnection reports whether err means the backend could not be reached.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrTimeout)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

// transportError classifies an error returned by http.Client.Do.
func transportError(err error) *ClientError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	default:
		return &ClientError{Type: ErrTypeConnection, Message: "backend unreachable", Cause: err}
	}
}

// statusError builds an error from a non-2xx response, using the
// backend's {"detail": ...} body when present.
func statusError(resp *http.Response, op string) *ClientError {
	errType := ErrTypeStatus
	if resp.StatusCode == http.StatusNotFound {
		errType = ErrTypeNotFound
	}

	msg := op + " failed: " + resp.Status
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if detail := parseDetail(data); detail != "" {
		msg = op + " failed: " + detail
	}

	return &ClientError{Type: errType, StatusCode: resp.StatusCode, Message: msg}
}

// parseDetail extracts a readable message from an error body. Validation
// errors carry a list of objects with "msg" fields.
func parseDetail(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Detail == nil {
		return ""
	}
	switch d := body.Detail.(type) {
	case string:
		return d
	case []any:
		parts := make([]string, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if s, ok := m["msg"].(string); ok {
					parts = append(parts, s)
				}
			}
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(d)
	}
}
