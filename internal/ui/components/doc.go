// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI components for the jarvis TUI.
//
//   - Header: title bar with the backend health badge
//   - ConfirmDialog: modal yes/no prompt that answers with ConfirmResultMsg
//   - StatusBar: status text plus key hints built from key.Binding help
//   - ErrorBanner: full-width error strip
package components
