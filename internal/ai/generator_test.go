package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newFakeEndpoint serves /chat/completions with the given handler and returns a
// Generator pointed at it.
func newFakeEndpoint(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewGenerator("test-key", srv.URL+"/", 5*time.Second)
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"id":"1","object":"chat.completion","model":"gemini-2.5-flash","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
}

func TestComplete_SendsSingleUserMessage(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	g := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(w, "Un prompt detallado")
	})

	out, err := g.Complete(context.Background(), "gemini-2.5-flash", "Idea del usuario")
	require.NoError(t, err)
	require.Equal(t, "Un prompt detallado", out)

	require.Equal(t, "gemini-2.5-flash", got.Model)
	require.Len(t, got.Messages, 1)
	require.Equal(t, "user", got.Messages[0].Role)
	require.Equal(t, "Idea del usuario", got.Messages[0].Content)
}

func TestComplete_DefaultModel(t *testing.T) {
	var model string
	g := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		model = body.Model
		writeCompletion(w, "ok")
	})

	_, err := g.Complete(context.Background(), "", "hola")
	require.NoError(t, err)
	require.Equal(t, DefaultModelID, model)
}

func TestComplete_EmptyChoices(t *testing.T) {
	g := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	})

	_, err := g.Complete(context.Background(), "m", "hola")
	require.ErrorIs(t, err, ErrEmptyResponse)
	require.Equal(t, KindEmpty, Classify(err))
}

func TestComplete_AuthFailureIsClassified(t *testing.T) {
	g := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid","type":"invalid_request_error","code":"401"}}`))
	})

	_, err := g.Complete(context.Background(), "m", "hola")
	require.Error(t, err)
	require.Equal(t, KindAuth, Classify(err))
}

func TestComplete_QuotaFailureIsClassified(t *testing.T) {
	g := newFakeEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Resource has been exhausted","type":"rate_limit","code":"429"}}`))
	})

	_, err := g.Complete(context.Background(), "m", "hola")
	require.Error(t, err)
	require.Equal(t, KindQuota, Classify(err))
}

func TestComplete_NetworkFailureIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewGenerator("k", url, time.Second)
	_, err := g.Complete(context.Background(), "m", "hola")
	require.Error(t, err)
	require.Equal(t, KindNetwork, Classify(err))
}

func TestClassify(t *testing.T) {
	require.Equal(t, ErrorKind(""), Classify(nil))
	require.Equal(t, KindCanceled, Classify(fmt.Errorf("wrapped: %w", context.Canceled)))
	require.Equal(t, KindNetwork, Classify(context.DeadlineExceeded))
	require.Equal(t, KindQuota, Classify(errors.New("rate limit reached")))
	require.Equal(t, KindUnknown, Classify(errors.New("boom")))
}
