// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the chat and
// knowledge base views.
//
// # Key Types
//
//   - Conversation: ordered, in-memory list of chat messages
//   - Message: a user or assistant turn, with cited sources and confidence
//   - KnowledgeEntry: a single record stored by the knowledge backend
//   - Category: the fixed set of knowledge entry categories
//   - HealthStatus: the backend's self-reported component availability
//
// # Usage
//
//	conv := model.NewConversation()
//	history := conv.History()
//	conv.Append(model.NewUserMessage("What is a venv?"))
//
// Tags typed as free text are normalized with ParseTags:
//
//	model.ParseTags("a, b ,b,") // []string{"a", "b"}
package model
