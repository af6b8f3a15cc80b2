// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/model"
)

// =============================================================================
// BACKEND RESULT MESSAGES
// =============================================================================

// HealthMsg carries the result of a health check.
// The app shell also reads it to update the header badge.
type HealthMsg struct {
	Status *model.HealthStatus
	Err    error
}

// ResponseMsg carries the backend's answer to one question.
type ResponseMsg struct {
	Response *api.ChatResponse
	Err      error
}

// =============================================================================
// LOCAL ACTION MESSAGES
// =============================================================================

// ExportedMsg reports the outcome of an export.
type ExportedMsg struct {
	Path string
	Err  error
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Chars int
	Err   error
}
