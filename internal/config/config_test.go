// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JARVIS_CONFIG_DIR", dir)
	for _, key := range []string{"JARVIS_API_URL", "JARVIS_TOP_K", "JARVIS_THEME", "JARVIS_EXPORT_DIR"} {
		t.Setenv(key, "")
	}
	return dir
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.SearchTopK)
	assert.Equal(t, 2, cfg.UI.MaxSources)
	assert.True(t, cfg.UI.RenderMarkdown)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := isolate(t)
	data := `
[api]
base_url = "http://kb.internal:9000/"
search_top_k = 10

[ui]
theme = "dark"
start_tab = "knowledge"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://kb.internal:9000", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.SearchTopK)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "knowledge", cfg.UI.StartTab)
	assert.Equal(t, 5, cfg.API.ContextLimit)
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"api": {"base_url": "https://jarvis.example.com"}}`), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://jarvis.example.com", cfg.API.BaseURL)
}

func TestLoad_BrokenTOMLFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api\nbase_url="), 0600))

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("JARVIS_API_URL", "http://10.0.0.5:8000")
	t.Setenv("JARVIS_TOP_K", "8")
	t.Setenv("JARVIS_THEME", "light")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", cfg.API.BaseURL)
	assert.Equal(t, 8, cfg.API.SearchTopK)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JARVIS_TEST_DOTENV=http://from-dotenv:8000\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("JARVIS_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "http://from-dotenv:8000", os.Getenv("JARVIS_TEST_DOTENV"))
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, "api.base_url"},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }, "api.base_url"},
		{"top k too large", func(c *Config) { c.API.SearchTopK = 1000 }, "api.search_top_k"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad tab", func(c *Config) { c.UI.StartTab = "settings" }, "ui.start_tab"},
		{"bad export format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
		{"negative rate", func(c *Config) { c.Import.RatePerSecond = -1 }, "import.rate_per_second"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}

	require.NoError(t, Default().Validate())
}

// =============================================================================
// GET/SET TESTS
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("api.search_top_k", "7"))
	v, err := cfg.Get("api.search_top_k")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	require.NoError(t, cfg.Set("ui.render_markdown", "false"))
	assert.False(t, cfg.UI.RenderMarkdown)

	_, err = cfg.Get("api.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("api.search_top_k", "many"))
}

func TestGetAllKeys(t *testing.T) {
	keys := GetAllKeys()
	assert.Contains(t, keys, "api.base_url")
	assert.Contains(t, keys, "ui.max_sources")
	assert.Contains(t, keys, "import.rate_per_second")
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.API.BaseURL = "http://saved:8000"

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved:8000", loaded.API.BaseURL)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

// =============================================================================
// GLOBAL TESTS
// =============================================================================

// TestConfig_ConcurrentAccess checks Global and SetGlobal under -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// WATCHER TESTS
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)

	w, err := NewWatcher(dir, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[api]\nsearch_top_k = 12\n"), 0600))

	select {
	case r := <-w.Reloads():
		require.NoError(t, r.Err)
		assert.Equal(t, 12, r.Config.API.SearchTopK)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing config.toml")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := isolate(t)

	w, err := NewWatcher(dir, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "history"), []byte("x"), 0600))

	select {
	case r := <-w.Reloads():
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}
