// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge provides the knowledge base manager view of the
// jarvis TUI: listing, searching, creating, editing and deleting entries.
//
// The entry list is a cache of the backend. Every successful create,
// update or delete is followed by exactly one fetch of the full list,
// and no local copy is ever patched in place.
package knowledge
