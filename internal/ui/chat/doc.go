// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the conversational view of the jarvis TUI.

The view keeps an in-memory conversation, sends each question together with
the prior history to the backend, and renders the answer with its cited
sources and confidence.

# States

  - StateIdle: waiting for input
  - StateSending: one request in flight; new submissions are ignored
  - StateError: the last operation failed and an error banner is shown

# Keys

  - Enter: send the question
  - PgUp/PgDn, Ctrl+Home/Ctrl+End: scroll the transcript
  - Ctrl+Y: copy the last answer to the clipboard
  - Ctrl+E: export the conversation
  - Ctrl+L: clear the conversation
  - Esc: dismiss the error banner

All network work runs inside tea.Cmd functions. Results come back as
HealthMsg and ResponseMsg and are applied in Update.
*/
package chat
