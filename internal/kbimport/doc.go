// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kbimport parses knowledge entries from text, markdown and JSON
// files and posts them to the backend at a controlled rate.
//
// Text files hold blocks of TITLE:, CONTENT: and TAGS: lines. Markdown
// files contribute one entry per level-2 heading. JSON files hold an
// array of entry objects.
package kbimport
