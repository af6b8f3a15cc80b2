// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_CreatesAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "chat.md")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0600); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "second" {
		t.Errorf("content = %q, want %q", content, "second")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tc := range tests {
		if got := TruncateRunes(tc.in, tc.max); got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestTruncateWidth_WideCharacters(t *testing.T) {
	if got := TruncateWidth("日本語テキスト", 7); StringWidth(got) > 7 {
		t.Errorf("TruncateWidth width = %d (%q)", StringWidth(got), got)
	}
	if got := TruncateWidth("short", 10); got != "short" {
		t.Errorf("TruncateWidth = %q", got)
	}
}

func TestClampLines(t *testing.T) {
	if got := ClampLines("a\nb\nc", 2); got != "a\nb..." {
		t.Errorf("ClampLines = %q", got)
	}
	if got := ClampLines("a\nb\n", 2); got != "a\nb" {
		t.Errorf("ClampLines = %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"What is a venv?":      "what-is-a-venv",
		"  REST   API  ":       "rest-api",
		"Git/Workflow (basic)": "git-workflow-basic",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSingleLine(t *testing.T) {
	if got := SingleLine("one\n two\t\tthree "); got != "one two three" {
		t.Errorf("SingleLine = %q", got)
	}
}
