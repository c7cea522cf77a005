// Package embedding implements C2: the EmbeddingCache + EmbeddingClient
// that resolve query text to an embedding vector, memoized by exact text.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/solr-hybrid/searchgw/internal/gwerrors"
)

// Client resolves query text to an embedding vector (§6.3).
type Client interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HTTPClient implements Client against an external embedding service
// reached over HTTP: a JSON POST of {"text": "..."} returning
// {"vector": [...]}.
type HTTPClient struct {
	address    string
	httpClient *http.Client
	maxRetries int
}

// NewHTTPClient builds an HTTPClient for the embedding service at address.
func NewHTTPClient(address string, timeout time.Duration, maxRetries int) *HTTPClient {
	return &HTTPClient{
		address: address,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        16,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		maxRetries: maxRetries,
	}
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Vector []float32 `json:"vector"`
}

// Embed calls the embedding service for one piece of text, retrying
// transient failures with exponential backoff. The outstanding HTTP call
// runs in a goroutine so ctx cancellation returns promptly instead of
// waiting for the transport to notice.
func (c *HTTPClient) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	delay := 250 * time.Millisecond

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		vec, err := c.doEmbed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err

		if attempt >= c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > 4*time.Second {
			delay = 4 * time.Second
		}
	}

	return nil, gwerrors.Unavailable(gwerrors.ErrCodeEmbeddingUnavailable,
		fmt.Sprintf("embedding service unavailable after %d attempts", c.maxRetries+1), lastErr)
}

func (c *HTTPClient) doEmbed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	type result struct {
		vec []float32
		err error
	}
	done := make(chan result, 1)

	go func() {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			done <- result{err: fmt.Errorf("embedding service returned %d: %s", resp.StatusCode, string(data))}
			return
		}

		var parsed embedResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			done <- result{err: fmt.Errorf("decode embed response: %w", err)}
			return
		}
		done <- result{vec: parsed.Vector}
	}()

	select {
	case <-ctx.Done():
		c.httpClient.CloseIdleConnections()
		return nil, ctx.Err()
	case r := <-done:
		return r.vec, r.err
	}
}
