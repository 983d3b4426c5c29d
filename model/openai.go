package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// OpenAIEmbedder talks to an OpenAI-compatible /embeddings endpoint. It also
// understands the Ollama-native response shape, so a local model works with
// the same adapter.
type OpenAIEmbedder struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type EmbedderConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewOpenAIEmbedder(cfg EmbedderConfig) *OpenAIEmbedder {
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIEmbedder{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// NewEmbedderFromEnv builds the embedder from EMBEDDING_API_URL,
// EMBEDDING_API_KEY and EMBEDDING_MODEL. A missing URL is a configuration
// error surfaced at startup, before any request is served.
func NewEmbedderFromEnv() (*OpenAIEmbedder, error) {
	url := os.Getenv("EMBEDDING_API_URL")
	if url == "" {
		return nil, errors.New("EMBEDDING_API_URL is not set")
	}
	return NewOpenAIEmbedder(EmbedderConfig{
		BaseURL: url,
		APIKey:  os.Getenv("EMBEDDING_API_KEY"),
		Model:   os.Getenv("EMBEDDING_MODEL"),
	}), nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	// Ollama-native shape
	Embedding []float64 `json:"embedding"`
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.request(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return vectors[0], nil
}

// EmbedBatch embeds several texts in one request where the provider supports
// array input, falling back to per-text requests otherwise.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.request(ctx, texts)
	if err == nil && len(vectors) == len(texts) {
		return vectors, nil
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (e *OpenAIEmbedder) request(ctx context.Context, input any) ([][]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding API error: status %d, body: %s", resp.StatusCode, string(payload))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out embeddingResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(out.Data) > 0 {
		vectors := make([][]float32, len(out.Data))
		for i, d := range out.Data {
			vectors[i] = normalize(d.Embedding)
		}
		return vectors, nil
	}
	if len(out.Embedding) > 0 {
		return [][]float32{normalize(out.Embedding)}, nil
	}
	return nil, errors.New("no embedding returned")
}
