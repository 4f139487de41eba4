package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiCompleter(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewGeminiCompleter(context.Background(), GeminiConfig{})

		assert.Error(t, err)
	})

	t.Run("defaults model", func(t *testing.T) {
		completer, err := NewGeminiCompleter(context.Background(), GeminiConfig{APIKey: "k"})

		require.NoError(t, err)
		assert.Equal(t, "gemini/gemini-2.0-flash", completer.Name())
	})
}

func TestGeminiCompleter_Complete(t *testing.T) {
	t.Run("returns candidate text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"negative"}]},"finishReason":"STOP"}]}`))
		}))
		defer server.Close()

		completer, err := NewGeminiCompleter(context.Background(), GeminiConfig{
			APIKey:  "k",
			BaseURL: server.URL,
			Model:   "gemini-test",
			Timeout: 5 * time.Second,
		})
		require.NoError(t, err)

		out, err := completer.Complete(context.Background(), "prompt")

		require.NoError(t, err)
		assert.Equal(t, "negative", out)
	})

	t.Run("blocked prompt is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
		}))
		defer server.Close()

		completer, err := NewGeminiCompleter(context.Background(), GeminiConfig{APIKey: "k", BaseURL: server.URL, Model: "gemini-test", Timeout: 5 * time.Second})
		require.NoError(t, err)

		_, err = completer.Complete(context.Background(), "prompt")

		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})
}
