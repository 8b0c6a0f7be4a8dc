package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
)

func newGeminiTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.Model = "gemini-2.5-flash"
	cfg.Gemini.BaseURL = server.URL
	return NewGeminiClient(cfg)
}

func TestGenerateContentExtractsText(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Top pick: "},{"text":"Camry LE"}]},"finishReason":"STOP"}]}`)
	})

	text, err := client.GenerateContent(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "Top pick: Camry LE", text)
}

func TestGenerateContentMissingKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.Gemini.Model = "gemini-2.5-flash"
	cfg.Gemini.BaseURL = "http://localhost:0"
	client := NewGeminiClient(cfg)

	_, err := client.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRecommendationRequest))
}

func TestGenerateContentErrorStatus(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	})

	_, err := client.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRecommendationRequest))
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	_, err := client.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRecommendationRequest))
}

func TestChatSessionGrowsMonotonically(t *testing.T) {
	var turnCounts []int
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		turnCounts = append(turnCounts, len(req.Contents))
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`)
	})

	session := NewChatSession(client, "catalog text")
	require.Equal(t, 1, session.Turns())

	_, err := session.Send(context.Background(), "first answer")
	require.NoError(t, err)
	require.Equal(t, 3, session.Turns())

	_, err = session.Send(context.Background(), "second answer")
	require.NoError(t, err)
	require.Equal(t, 5, session.Turns())

	// each request carried the whole conversation so far
	require.Equal(t, []int{2, 4}, turnCounts)
}

func TestChatSessionKeepsHistoryOnFailure(t *testing.T) {
	fail := true
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`)
	})

	session := NewChatSession(client, "catalog text")

	_, err := session.Send(context.Background(), "hello")
	require.Error(t, err)
	require.Equal(t, 1, session.Turns())

	fail = false
	reply, err := session.Send(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "ok", reply)
	require.Equal(t, 3, session.Turns())
}
