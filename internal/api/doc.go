// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Jarvis knowledge backend.
//
// Every method issues exactly one JSON request against the configured
// base URL. There are no retries, no caching and no client-side timeout;
// cancellation is driven entirely by the caller's context.
//
// # Key Types
//
//   - Client: typed access to the chat, health, knowledge and search endpoints
//   - ChatResponse: assistant reply with cited sources and confidence
//   - ClientError: categorized failure (connection, status, not found, ...)
//
// # Usage
//
//	client := api.NewClient("http://localhost:8000")
//	resp, err := client.SendMessage(ctx, "What is a venv?", conv.History())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Response)
//
// Knowledge entries:
//
//	entries, err := client.GetAllEntries(ctx)
//	created, err := client.AddEntry(ctx, model.EntryInput{Title: "Git", Content: "..."})
//	results, err := client.Search(ctx, "branching", 0) // top_k defaults to 5
package api
