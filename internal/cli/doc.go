// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of jarvis.
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdAsk:
//	    cli.HandleAsk(args)
//	case cli.CmdKB:
//	    cli.HandleKB(args)
//	}
//
// # Commands
//
//   - ask: one-shot question, answer rendered as markdown
//   - chat: line-mode conversation with input history
//   - status: backend health
//   - kb: list, get, search, add, edit, rm, import and seed entries
//   - config: show, get, set, path, keys and init
//
// Every command accepts --json and then prints a JSONResponse envelope on
// stdout. Errors map to exit codes through GetExitCode.
package cli
