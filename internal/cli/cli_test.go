// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/config"
)

// =============================================================================
// TEST BACKEND
// =============================================================================

type request struct {
	Method string
	Path   string
	Body   map[string]any
}

type testBackend struct {
	mu       sync.Mutex
	requests []request
	handler  func(w http.ResponseWriter, r request)
}

func newTestBackend(t *testing.T, handler func(w http.ResponseWriter, r request)) (*testBackend, *httptest.Server) {
	t.Helper()
	b := &testBackend{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{Method: r.Method, Path: r.URL.Path}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &req.Body)
		}
		b.mu.Lock()
		b.requests = append(b.requests, req)
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		b.handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *testBackend) calls() []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]request(nil), b.requests...)
}

func testEnv(baseURL string) (*Env, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	return &Env{
		Out:    out,
		Err:    out,
		In:     strings.NewReader(""),
		Config: cfg,
		Client: api.NewClient(baseURL),
		Width:  100,
	}, out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"search", "vector", "db", "--top-k", "3", "--category=technical", "--yes", "7"}, "yes")

	assert.Equal(t, "search", p.Subcommand())
	assert.Equal(t, "3", p.Flag("top-k"))
	assert.Equal(t, "technical", p.Flag("category"))
	assert.True(t, p.BoolFlag("yes"))
	assert.Equal(t, []string{"vector", "db", "7"}, p.PositionalFrom(1))
	assert.True(t, p.HasFlag("missing", "top-k"))
	assert.False(t, p.HasFlag("missing"))
	assert.Equal(t, "fallback", p.FlagOrDefault("missing", "fallback"))
}

func TestArgParser_DoubleDash(t *testing.T) {
	p := NewArgParser([]string{"add", "--", "--not-a-flag"})
	assert.Equal(t, []string{"add", "--not-a-flag"}, p.PositionalFrom(0))
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		want  Command
		check func(t *testing.T, a Args)
	}{
		{name: "no args starts tui", argv: nil, want: CmdTUI},
		{
			name: "tui on knowledge tab",
			argv: []string{"tui", "--kb"},
			want: CmdTUI,
			check: func(t *testing.T, a Args) {
				assert.True(t, a.KB)
			},
		},
		{
			name: "ask joins words",
			argv: []string{"ask", "what", "is", "RAG?"},
			want: CmdAsk,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "what is RAG?", a.Query)
			},
		},
		{
			name: "global flags anywhere",
			argv: []string{"kb", "--json", "list", "--api-url", "http://kb:9000", "-q"},
			want: CmdKB,
			check: func(t *testing.T, a Args) {
				assert.True(t, a.JSON)
				assert.True(t, a.Quiet)
				assert.Equal(t, "http://kb:9000", a.APIURL)
				assert.Equal(t, "list", a.Subcommand)
				assert.Equal(t, []string{"list"}, a.Raw)
			},
		},
		{
			name: "api url with equals",
			argv: []string{"--api-url=http://x:1", "status"},
			want: CmdStatus,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "http://x:1", a.APIURL)
			},
		},
		{name: "status alias", argv: []string{"s"}, want: CmdStatus},
		{
			name: "verbose is global",
			argv: []string{"-v", "chat"},
			want: CmdChat,
			check: func(t *testing.T, a Args) {
				assert.True(t, a.Verbose)
			},
		},
		{name: "version", argv: []string{"--version"}, want: CmdVersion},
		{name: "help", argv: []string{"-h"}, want: CmdHelp},
		{name: "config", argv: []string{"config", "get", "api.base_url"}, want: CmdConfig},
		{
			name: "unknown",
			argv: []string{"frobnicate"},
			want: CmdUnknown,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "frobnicate", a.Name)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			assert.Equal(t, tt.want, cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

// =============================================================================
// EXIT CODE TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &UsageError{Message: "x"}, ExitUsageError},
		{"validation", &ValidationError{Field: "id"}, ExitUsageError},
		{"not found", &NotFoundError{Resource: "entry", ID: "1"}, ExitNotFoundError},
		{"backend 404", NewCommandError("kb", "get", "x", api.ErrNotFound), ExitNotFoundError},
		{"unreachable", NewCommandError("status", "check", "x", api.ErrConnection), ExitNetworkError},
		{"config", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "ui.theme"}}), ExitConfigError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, &NotFoundError{Resource: "entry", ID: "9"}, true)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "not_found_error", out["error_type"])
	assert.Equal(t, float64(ExitNotFoundError), out["exit_code"])
}

// =============================================================================
// ASK / STATUS TESTS
// =============================================================================

func TestRunAsk(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"response":   "Use python -m venv venv.",
			"confidence": 0.87,
			"sources": []map[string]any{
				{"id": "1", "score": 0.9, "metadata": map[string]any{"title": "Python Virtual Environments"}},
				{"id": "2", "score": 0.5},
				{"id": "3", "score": 0.1, "metadata": map[string]any{"title": "Third"}},
			},
		})
	})
	env, out := testEnv(srv.URL)

	require.NoError(t, RunAsk(context.Background(), env, "  how do I make a venv?  "))

	calls := b.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/chat", calls[0].Path)
	assert.Equal(t, "how do I make a venv?", calls[0].Body["query"])
	assert.Empty(t, calls[0].Body["conversation_history"])

	text := out.String()
	assert.Contains(t, text, "Use python -m venv venv.")
	assert.Contains(t, text, "Sources:")
	assert.Contains(t, text, "  - Python Virtual Environments")
	assert.Contains(t, text, "  - Source 2")
	assert.NotContains(t, text, "Third")
	assert.Contains(t, text, "Confidence: 87%")
}

func TestRunAsk_JSON(t *testing.T) {
	_, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, map[string]any{"response": "42", "sources": []any{}, "confidence": nil})
	})
	env, out := testEnv(srv.URL)
	env.JSON = true

	require.NoError(t, RunAsk(context.Background(), env, "meaning"))

	var resp struct {
		Success bool    `json:"success"`
		Command string  `json:"command"`
		Data    AskData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ask", resp.Command)
	assert.Equal(t, "42", resp.Data.Response)
	assert.Nil(t, resp.Data.Confidence)
}

func TestRunAsk_RequiresQuestion(t *testing.T) {
	env, _ := testEnv("http://127.0.0.1:1")
	err := RunAsk(context.Background(), env, "   ")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRunStatus(t *testing.T) {
	_, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "healthy", "llm_available": true,
			"vector_db_available": false, "embedding_model_available": true,
		})
	})
	env, out := testEnv(srv.URL)

	require.NoError(t, RunStatus(context.Background(), env))
	text := out.String()
	assert.Contains(t, text, "Jarvis Status")
	assert.Contains(t, text, "unavailable")
	assert.Contains(t, text, "Ready")
}

func TestRunStatus_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	env, _ := testEnv(url)
	err := RunStatus(context.Background(), env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrTextConnect)
	assert.Equal(t, ExitNetworkError, GetExitCode(err))
}

// =============================================================================
// KB TESTS
// =============================================================================

func entryJSON(id int, title string) map[string]any {
	return map[string]any{
		"id": id, "title": title, "content": "body of " + title, "category": "technical",
		"tags": []string{"go"}, "created_at": "2024-05-01T10:00:00", "updated_at": "2024-05-02T11:30:00",
	}
}

func TestKBList_FiltersCategory(t *testing.T) {
	_, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		personal := entryJSON(2, "Diary")
		personal["category"] = "personal"
		writeJSON(w, http.StatusOK, []any{entryJSON(1, "Go Modules"), personal})
	})
	env, out := testEnv(srv.URL)

	require.NoError(t, RunKB(context.Background(), env, []string{"list", "--category", "technical"}))
	assert.Contains(t, out.String(), "Go Modules")
	assert.NotContains(t, out.String(), "Diary")
	assert.Contains(t, out.String(), "#go")
}

func TestKBGet_NotFound(t *testing.T) {
	_, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Entry not found"})
	})
	env, _ := testEnv(srv.URL)

	err := RunKB(context.Background(), env, []string{"get", "99"})
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestKBGet_BadID(t *testing.T) {
	env, _ := testEnv("http://127.0.0.1:1")
	err := RunKB(context.Background(), env, []string{"get", "abc"})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestKBSearch_TopKAndCategory(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, []any{entryJSON(4, "Database Indexing")})
	})
	env, out := testEnv(srv.URL)

	require.NoError(t, RunKB(context.Background(), env, []string{"search", "index", "speed", "--top-k", "3", "--category", "technical"}))

	calls := b.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/search", calls[0].Path)
	assert.Equal(t, "index speed", calls[0].Body["query"])
	assert.Equal(t, float64(3), calls[0].Body["top_k"])
	assert.Equal(t, "technical", calls[0].Body["category"])
	assert.Contains(t, out.String(), "Database Indexing")
}

func TestKBSearch_DefaultTopK(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	env, out := testEnv(srv.URL)

	require.NoError(t, RunKB(context.Background(), env, []string{"search", "nothing"}))
	assert.Equal(t, float64(5), b.calls()[0].Body["top_k"])
	assert.Contains(t, out.String(), "No entries match your search.")
}

func TestKBAdd_ValidationSkipsRequest(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, entryJSON(1, "x"))
	})
	env, _ := testEnv(srv.URL)

	err := RunKB(context.Background(), env, []string{"add", "--title", "Only a title"})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Empty(t, b.calls())
}

func TestKBAdd(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, entryJSON(12, "Git Workflow"))
	})
	env, out := testEnv(srv.URL)

	require.NoError(t, RunKB(context.Background(), env, []string{
		"add", "--title", " Git Workflow ", "--content", "Branch from main.", "--tags", "git, review, git", "--category", "technical",
	}))

	body := b.calls()[0].Body
	assert.Equal(t, "Git Workflow", body["title"])
	assert.Equal(t, []any{"git", "review"}, body["tags"])
	assert.Equal(t, "technical", body["category"])
	assert.Contains(t, out.String(), "Added entry 12")
}

func TestKBEdit_SendsOnlyGivenFields(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, entryJSON(7, "Renamed"))
	})
	env, _ := testEnv(srv.URL)

	require.NoError(t, RunKB(context.Background(), env, []string{"edit", "7", "--title", "Renamed"}))

	call := b.calls()[0]
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Equal(t, "/knowledge/7", call.Path)
	assert.Equal(t, map[string]any{"title": "Renamed"}, call.Body)
}

func TestKBEdit_NothingToChange(t *testing.T) {
	env, _ := testEnv("http://127.0.0.1:1")
	err := RunKB(context.Background(), env, []string{"edit", "7"})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestKBRemove(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Entry 3 deleted"})
	})

	t.Run("declined", func(t *testing.T) {
		env, out := testEnv(srv.URL)
		env.In = strings.NewReader("n\n")
		require.NoError(t, RunKB(context.Background(), env, []string{"rm", "3"}))
		assert.Contains(t, out.String(), "Are you sure")
		assert.Empty(t, b.calls())
	})

	t.Run("confirmed by flag", func(t *testing.T) {
		env, out := testEnv(srv.URL)
		require.NoError(t, RunKB(context.Background(), env, []string{"rm", "3", "--yes"}))
		calls := b.calls()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodDelete, calls[0].Method)
		assert.Contains(t, out.String(), "Entry 3 deleted")
	})
}

func TestKBImport_Markdown(t *testing.T) {
	var next int
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		next++
		title, _ := r.Body["title"].(string)
		if title == "Broken" {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "embedding failed"})
			return
		}
		writeJSON(w, http.StatusOK, entryJSON(next, title))
	})
	env, out := testEnv(srv.URL)

	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("## Alpha\nfirst\n\n## Broken\nsecond\n\n## Gamma\nthird\n"), 0644))

	err := RunKB(context.Background(), env, []string{"import", path, "--category", "technical"})
	require.Error(t, err, "a failed entry makes the import fail")

	calls := b.calls()
	require.Len(t, calls, 3)
	for _, c := range calls {
		assert.Equal(t, "technical", c.Body["category"])
		assert.Equal(t, path, c.Body["source"])
	}
	assert.Contains(t, out.String(), "2 added, 1 failed, 0 skipped")
}

func TestKBImport_JSONCategory(t *testing.T) {
	data := []byte(`[
		{"title": "Alpha", "content": "a", "category": "business"},
		{"title": "Beta", "content": "b"}
	]`)
	path := filepath.Join(t.TempDir(), "entries.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"entry categories kept", []string{"import", path}, []string{"business", "general"}},
		{"flag overrides every entry", []string{"import", path, "--category", "personal"}, []string{"personal", "personal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
				title, _ := r.Body["title"].(string)
				writeJSON(w, http.StatusOK, entryJSON(1, title))
			})
			env, _ := testEnv(srv.URL)

			require.NoError(t, RunKB(context.Background(), env, tt.args))
			calls := b.calls()
			require.Len(t, calls, 2)
			for i, c := range calls {
				assert.Equal(t, tt.want[i], c.Body["category"])
			}
		})
	}
}

func TestKBImport_DryRun(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, entryJSON(1, "x"))
	})
	env, out := testEnv(srv.URL)

	path := filepath.Join(t.TempDir(), "entries.txt")
	require.NoError(t, os.WriteFile(path, []byte("TITLE: One\nCONTENT: 1\nTITLE: Two\nCONTENT: 2\n"), 0644))

	require.NoError(t, RunKB(context.Background(), env, []string{"import", path, "--dry-run"}))
	assert.Empty(t, b.calls())
	assert.Contains(t, out.String(), "2 entries parsed")
}

func TestKBSeed(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		title, _ := r.Body["title"].(string)
		writeJSON(w, http.StatusOK, entryJSON(1, title))
	})
	env, out := testEnv(srv.URL)
	env.JSON = true

	require.NoError(t, RunKB(context.Background(), env, []string{"seed"}))
	assert.Len(t, b.calls(), 5)

	var resp struct {
		Data ImportData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 5, resp.Data.Added)
}

func TestKB_UnknownSubcommand(t *testing.T) {
	env, _ := testEnv("http://127.0.0.1:1")
	assert.Equal(t, ExitUsageError, GetExitCode(RunKB(context.Background(), env, []string{"frob"})))
	assert.Equal(t, ExitUsageError, GetExitCode(RunKB(context.Background(), env, nil)))
}

// =============================================================================
// CHAT SESSION TESTS
// =============================================================================

func TestChatSession_SendsHistory(t *testing.T) {
	b, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, map[string]any{"response": "answer to " + r.Body["query"].(string)})
	})
	env, out := testEnv(srv.URL)
	s := NewChatSession(env)
	ctx := context.Background()

	keep, err := s.HandleLine(ctx, "first")
	require.NoError(t, err)
	require.True(t, keep)
	_, err = s.HandleLine(ctx, "second")
	require.NoError(t, err)

	calls := b.calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Body["conversation_history"])
	history, ok := calls[1].Body["conversation_history"].([]any)
	require.True(t, ok)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].(map[string]any)["role"])
	assert.Equal(t, "first", history[0].(map[string]any)["content"])
	assert.Equal(t, "assistant", history[1].(map[string]any)["role"])

	assert.Equal(t, 4, s.Conversation().Len())
	assert.Contains(t, out.String(), "answer to second")
}

func TestChatSession_FailureKeepsUserTurn(t *testing.T) {
	_, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "llm down"})
	})
	env, _ := testEnv(srv.URL)
	s := NewChatSession(env)

	keep, err := s.HandleLine(context.Background(), "hello")
	assert.True(t, keep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrTextResponse)
	assert.Equal(t, 1, s.Conversation().Len())
}

func TestChatSession_SlashCommands(t *testing.T) {
	_, srv := newTestBackend(t, func(w http.ResponseWriter, r request) {
		writeJSON(w, http.StatusOK, map[string]any{"response": "ok"})
	})
	env, out := testEnv(srv.URL)
	env.Config.Export.Dir = t.TempDir()
	s := NewChatSession(env)
	ctx := context.Background()

	_, err := s.HandleLine(ctx, "/export")
	assert.Error(t, err, "nothing to export yet")

	_, err = s.HandleLine(ctx, "hi")
	require.NoError(t, err)

	_, err = s.HandleLine(ctx, "/history")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "You:")

	_, err = s.HandleLine(ctx, "/export json")
	require.NoError(t, err)
	files, _ := filepath.Glob(filepath.Join(env.Config.Export.Dir, "*.json"))
	assert.Len(t, files, 1)

	_, err = s.HandleLine(ctx, "/clear")
	require.NoError(t, err)
	assert.True(t, s.Conversation().IsEmpty())

	_, err = s.HandleLine(ctx, "/bogus")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	keep, err := s.HandleLine(ctx, "/quit")
	require.NoError(t, err)
	assert.False(t, keep)
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestRunConfig_SetGet(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JARVIS_CONFIG_DIR", dir)
	for _, k := range []string{"JARVIS_API_URL", "JARVIS_TOP_K", "JARVIS_THEME", "JARVIS_EXPORT_DIR"} {
		t.Setenv(k, "")
	}
	defer config.ResetGlobalForTesting()

	out := &bytes.Buffer{}
	env := &Env{Out: out, Err: out}

	require.NoError(t, RunConfig(env, []string{"init"}))
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.Equal(t, ExitUsageError, GetExitCode(RunConfig(env, []string{"init"})))
	require.NoError(t, RunConfig(env, []string{"init", "--force"}))

	require.NoError(t, RunConfig(env, []string{"set", "api.search_top_k", "8"}))
	out.Reset()
	require.NoError(t, RunConfig(env, []string{"get", "api.search_top_k"}))
	assert.Equal(t, "8\n", out.String())

	err := RunConfig(env, []string{"set", "ui.theme", "neon"})
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	err = RunConfig(env, []string{"get", "api.nope"})
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))

	out.Reset()
	require.NoError(t, RunConfig(env, []string{"path"}))
	assert.Equal(t, filepath.Join(dir, "config.toml")+"\n", out.String())
}
