// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitNetworkError  = 5
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failed command step. Err keeps the cause so
// GetExitCode can classify backend failures.
type CommandError struct {
	Command string
	Action  string
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError is rejected user input.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// UsageError is a malformed command line.
type UsageError struct {
	Message string
	Usage   string
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return e.Message + "\nUsage: " + e.Usage
	}
	return e.Message
}

// NotFoundError is a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewCommandError creates a CommandError.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		usageErr *UsageError
		validErr *ValidationError
		notFound *NotFoundError
		cfgErrs  config.ValidateErrors
		cfgErr   config.ValidationError
	)
	switch {
	case errors.As(err, &usageErr), errors.As(err, &validErr):
		return ExitUsageError
	case errors.As(err, &notFound), api.IsNotFound(err):
		return ExitNotFoundError
	case api.IsConnection(err):
		return ExitNetworkError
	case errors.As(err, &cfgErrs), errors.As(err, &cfgErr):
		return ExitConfigError
	default:
		return ExitGeneralError
	}
}

// errorType names err for the JSON error envelope.
func errorType(err error) string {
	var (
		cmdErr   *CommandError
		usageErr *UsageError
		validErr *ValidationError
		notFound *NotFoundError
	)
	switch {
	case errors.As(err, &usageErr):
		return "usage_error"
	case errors.As(err, &validErr):
		return "validation_error"
	case errors.As(err, &notFound), api.IsNotFound(err):
		return "not_found_error"
	case api.IsConnection(err):
		return "network_error"
	case errors.As(err, &cmdErr):
		return "command_error"
	default:
		return "generic_error"
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to w, as a JSON object in JSON mode.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		out := map[string]any{
			"success":    false,
			"error":      err.Error(),
			"error_type": errorType(err),
			"exit_code":  GetExitCode(err),
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}
