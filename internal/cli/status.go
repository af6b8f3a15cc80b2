// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - backend health command.
//
// Examples:
//   jarvis status                 Show component availability
//   jarvis s --json               Same, as a JSON envelope
//
// Exits 5 when the backend cannot be reached.

package cli

import (
	"context"
	"fmt"
)

// ErrTextConnect is shown when the backend cannot be reached.
const ErrTextConnect = "Failed to connect to the server"

// RunStatus fetches /health and prints each component.
func RunStatus(ctx context.Context, env *Env) error {
	baseURL := env.Client.BaseURL()
	health, err := env.Client.GetHealth(ctx)
	if err != nil {
		return NewCommandError("status", "check", ErrTextConnect, err)
	}

	data := StatusData{
		BaseURL:                 baseURL,
		Reachable:               true,
		Status:                  health.Status,
		Mode:                    health.ModeLabel(),
		LLMAvailable:            health.LLMAvailable,
		VectorDBAvailable:       health.VectorDBAvailable,
		EmbeddingModelAvailable: health.EmbeddingModelAvailable,
	}
	return env.emit("status", data, func() {
		w := env.Out
		if env.Quiet {
			fmt.Fprintln(w, health.ModeLabel())
			return
		}
		fmt.Fprintln(w, TitleStyle.Render("Jarvis Status"))
		fmt.Fprintln(w, Field("Backend", baseURL))
		status := health.Status
		if health.IsHealthy() {
			status = SuccessStyle.Render(status)
		} else {
			status = WarningStyle.Render(status)
		}
		fmt.Fprintln(w, Field("Status", status))
		fmt.Fprintln(w, Field("LLM", Availability(health.LLMAvailable)))
		fmt.Fprintln(w, Field("Vector DB", Availability(health.VectorDBAvailable)))
		fmt.Fprintln(w, Field("Embeddings", Availability(health.EmbeddingModelAvailable)))
		fmt.Fprintln(w, Field("Mode", health.ModeLabel()))
	})
}
