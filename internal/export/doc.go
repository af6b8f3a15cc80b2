// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to disk.
//
// # Supported Formats
//
//   - Markdown: human-readable, with cited sources and confidence
//   - JSON: the conversation as-is, for tooling
//
// # Usage
//
//	exporter, err := export.ForFormat("markdown", nil)
//	path, err := export.ExportToFile(conv, exporter, &export.Options{OutputDir: dir})
package export
