// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// ErrorBanner renders message as a full-width error strip, or "" when
// message is empty.
func ErrorBanner(theme *styles.Theme, message string, width int) string {
	if message == "" {
		return ""
	}
	return theme.ErrorBanner.Width(max(width-2, 10)).Render(styles.StatusIndicators.Error + " " + message)
}
