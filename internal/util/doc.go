// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string and file helpers shared across jarvis.
//
// # Key Functions
//
//   - TruncateRunes, TruncateWidth: UTF-8 and display-width safe truncation
//   - ClampLines: keep the first n lines of wrapped text
//   - Slugify: filesystem-friendly names for exported files
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
