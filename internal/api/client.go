// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Jarvis knowledge backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jeranaias/jarvis-tui/internal/model"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the API client.
type ClientConfig struct {
	// BaseURL is the backend root (default: http://localhost:8000)
	BaseURL string

	// HTTPClient performs requests. The zero value uses a client with no
	// timeout so requests run until the backend answers or ctx ends.
	HTTPClient *http.Client

	// ContextLimit is sent with every chat request (default: 5)
	ContextLimit int

	// Verbose logs one line per request through the standard logger.
	Verbose bool
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      DefaultBaseURL,
		HTTPClient:   &http.Client{},
		ContextLimit: DefaultContextLimit,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the backend API.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a client for baseURL with default settings.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	if config.ContextLimit == 0 {
		config.ContextLimit = DefaultContextLimit
	}

	return &Client{
		config:     config,
		httpClient: config.HTTPClient,
	}
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CHAT
// =============================================================================

// SendMessage posts query with the prior conversation turns to /chat.
// history must not include the message being sent.
func (c *Client) SendMessage(ctx context.Context, query string, history []model.Message) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Query:               query,
		ConversationHistory: toHistory(history),
		ContextLimit:        c.config.ContextLimit,
	}

	var result ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", reqBody, &result, "chat"); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// HEALTH
// =============================================================================

// GetHealth fetches the backend's component availability.
func (c *Client) GetHealth(ctx context.Context) (*model.HealthStatus, error) {
	var result model.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &result, "health check"); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// KNOWLEDGE ENTRIES
// =============================================================================

// GetAllEntries lists every knowledge entry.
func (c *Client) GetAllEntries(ctx context.Context) ([]model.KnowledgeEntry, error) {
	result := make([]model.KnowledgeEntry, 0)
	if err := c.do(ctx, http.MethodGet, "/knowledge", nil, &result, "list entries"); err != nil {
		return nil, err
	}
	return result, nil
}

// GetEntry fetches a single entry by id.
func (c *Client) GetEntry(ctx context.Context, id int) (*model.KnowledgeEntry, error) {
	var result model.KnowledgeEntry
	if err := c.do(ctx, http.MethodGet, entryPath(id), nil, &result, "get entry"); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddEntry creates an entry and returns it as stored by the backend.
func (c *Client) AddEntry(ctx context.Context, input model.EntryInput) (*model.KnowledgeEntry, error) {
	var result model.KnowledgeEntry
	if err := c.do(ctx, http.MethodPost, "/knowledge", input.Normalize(), &result, "add entry"); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEntry applies a partial update to the entry with id.
func (c *Client) UpdateEntry(ctx context.Context, id int, update model.EntryUpdate) (*model.KnowledgeEntry, error) {
	var result model.KnowledgeEntry
	if err := c.do(ctx, http.MethodPut, entryPath(id), update, &result, "update entry"); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEntry removes the entry with id and returns the backend's
// acknowledgement message.
func (c *Client) DeleteEntry(ctx context.Context, id int) (string, error) {
	var result deleteResponse
	if err := c.do(ctx, http.MethodDelete, entryPath(id), nil, &result, "delete entry"); err != nil {
		return "", err
	}
	return result.Message, nil
}

// =============================================================================
// SEARCH
// =============================================================================

// Search runs a semantic search. topK <= 0 requests DefaultTopK results.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]model.KnowledgeEntry, error) {
	return c.SearchInCategory(ctx, query, "", topK)
}

// SearchInCategory runs a semantic search restricted to category.
// An empty category searches everything.
func (c *Client) SearchInCategory(ctx context.Context, query string, category model.Category, topK int) ([]model.KnowledgeEntry, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	reqBody := SearchRequest{
		Query:    query,
		Category: string(category),
		TopK:     topK,
	}

	result := make([]model.KnowledgeEntry, 0)
	if err := c.do(ctx, http.MethodPost, "/search", reqBody, &result, "search"); err != nil {
		return nil, err
	}
	return result, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func entryPath(id int) string {
	return "/knowledge/" + strconv.Itoa(id)
}

// do performs one JSON request. body is encoded when non-nil; out is
// decoded from a 2xx response when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any, op string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.config.Verbose {
		log.Printf("API: %s %s", method, path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.config.Verbose {
			log.Printf("API: %s %s failed: %v", method, path, err)
		}
		return transportError(err)
	}
	defer resp.Body.Close()

	if c.config.Verbose {
		log.Printf("API: %s %s -> %d", method, path, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, op)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ClientError{Type: ErrTypeInvalidResponse, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return nil
}
