package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
)

type captured struct {
	path string
	key  string
	body generateContentRequest
}

func newServer(t *testing.T, status int, reply string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.key = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &got.body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(Config{})
	require.Error(t, err)

	svc, err := NewLLMService(Config{APIKey: "k", BaseURL: "https://example.test/v1beta/"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, "https://example.test/v1beta", svc.baseURL)
	assert.NoError(t, svc.Close())
}

func TestChat_Request(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"docType\":\"HOSR\"}"}]}}]}`, &got)

	svc, err := NewLLMService(Config{APIKey: "g-key", BaseURL: srv.URL, Model: "gemini-test"})
	require.NoError(t, err)

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "you read legal documents"},
		{Role: "user", Content: "extract", Attachments: []driven.Attachment{
			{MimeType: "application/pdf", Data: []byte("pdf")},
		}},
		{Role: "assistant", Content: "ok"},
	}, driven.ChatOptions{JSON: true})
	require.NoError(t, err)

	assert.Equal(t, `{"docType":"HOSR"}`, reply)
	assert.Equal(t, "/models/gemini-test:generateContent", got.path)
	assert.Equal(t, "g-key", got.key)

	require.NotNil(t, got.body.SystemInstruction)
	assert.Equal(t, "you read legal documents", got.body.SystemInstruction.Parts[0].Text)
	require.NotNil(t, got.body.GenerationConfig)
	assert.Equal(t, "application/json", got.body.GenerationConfig.ResponseMimeType)

	require.Len(t, got.body.Contents, 2)
	user := got.body.Contents[0]
	assert.Equal(t, "user", user.Role)
	require.Len(t, user.Parts, 2)
	require.NotNil(t, user.Parts[0].InlineData)
	assert.Equal(t, "application/pdf", user.Parts[0].InlineData.MimeType)
	assert.Equal(t, "cGRm", user.Parts[0].InlineData.Data)
	assert.Equal(t, "extract", user.Parts[1].Text)
	assert.Equal(t, "model", got.body.Contents[1].Role)
}

func TestChat_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
		target error
	}{
		{"api error", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`, nil},
		{"rate limited", http.StatusTooManyRequests, `{}`, domain.ErrRateLimited},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.reply, &captured{})
			svc, err := NewLLMService(Config{APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "x"}}, driven.ChatOptions{})
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestPing(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, `{"models":[]}`, &got)
	svc, err := NewLLMService(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	require.NoError(t, svc.Ping(context.Background()))
	assert.Equal(t, "/models", got.path)
	assert.Equal(t, "k", got.key)
}
