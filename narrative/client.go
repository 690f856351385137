/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package narrative

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults for the hosted OpenAI-compatible endpoint.
const (
	DefaultBaseURL = "https://api.groq.com/openai"
	DefaultModel   = "llama-3.1-8b-instant"
	DefaultTimeout = 60 * time.Second
)

// Config holds the chat completions endpoint configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAI-compatible request/response structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
	Delta   chatMessage `json:"delta,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to an OpenAI-compatible /v1/chat/completions endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient fills in defaults for empty configuration fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) newRequest(ctx context.Context, messages []chatMessage, stream bool) (*http.Request, error) {
	if c.cfg.APIKey == "" {
		return nil, errAPIKeyNotSet
	}

	jsonBody, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: messages,
		Stream:   stream,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat completions: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return nil, fmt.Errorf("%w: %d: %s", errUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp, nil
}

// complete sends a blocking chat completion and returns the message text.
func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := c.newRequest(ctx, messages, false)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: %s", errAPI, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", errEmptyResponse
	}

	return chatResp.Choices[0].Message.Content, nil
}

// stream sends a streaming chat completion. onChunk is called for each
// content delta in order.
func (c *Client) stream(ctx context.Context, messages []chatMessage, onChunk func(string) error) error {
	req, err := c.newRequest(ctx, messages, true)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		done, chunkErr := handleStreamLine(line, onChunk)
		if chunkErr != nil {
			return chunkErr
		}

		if done || errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// handleStreamLine processes one "data: {...}" server-sent event line.
func handleStreamLine(line []byte, onChunk func(string) error) (bool, error) {
	lineStr := strings.TrimSpace(string(line))
	if !strings.HasPrefix(lineStr, "data: ") {
		return false, nil
	}

	data := strings.TrimPrefix(lineStr, "data: ")
	if data == "[DONE]" {
		return true, nil
	}

	var chatResp chatResponse
	if err := json.Unmarshal([]byte(data), &chatResp); err != nil {
		// Skip malformed chunks
		return false, nil
	}

	if chatResp.Error != nil {
		return false, fmt.Errorf("%w: %s", errAPI, chatResp.Error.Message)
	}

	if len(chatResp.Choices) > 0 {
		if content := chatResp.Choices[0].Delta.Content; content != "" {
			if err := onChunk(content); err != nil {
				return false, err
			}
		}
	}

	return false, nil
}
