package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Embed_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello world", req.Text)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(embedResponse{Vector: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 2*time.Second, 2)
	vec, err := client.Embed(t.Context(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestHTTPClient_Embed_RetriesThenFails(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 2*time.Second, 2)
	client.httpClient.Timeout = 2 * time.Second

	start := time.Now()
	_, err := client.Embed(t.Context(), "x")
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestHTTPClient_Embed_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second, 0)
	_, err := client.Embed(t.Context(), "x")
	assert.Error(t, err)
}
