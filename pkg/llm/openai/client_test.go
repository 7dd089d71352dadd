package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/llm"
)

// fakeCompletions отвечает фиксированным content и сохраняет тело запроса.
func fakeCompletions(t *testing.T, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
}

func TestNewClient(t *testing.T) {
	client := NewClient(config.ModelDef{
		APIKey:      "test-key",
		ModelName:   "gpt-4o-mini",
		BaseURL:     "https://openrouter.ai/api/v1",
		MaxTokens:   256,
		Temperature: 0.2,
		Timeout:     10 * time.Second,
	})

	require.NotNil(t, client.api)
	assert.Equal(t, "gpt-4o-mini", client.defaults.Model)
	assert.Equal(t, 256, client.defaults.MaxTokens)
	assert.Equal(t, 0.2, client.defaults.Temperature)
}

func TestGenerate_JSONFormat(t *testing.T) {
	var body map[string]any
	srv := fakeCompletions(t, `{"name":"home","tags":["house"]}`, &body)
	defer srv.Close()

	client := NewClient(config.ModelDef{APIKey: "k", ModelName: "base-model", BaseURL: srv.URL})

	msg, err := client.Generate(context.Background(),
		[]llm.Message{{Role: llm.RoleUser, Content: "name this icon"}},
		llm.WithFormat(llm.FormatJSON), llm.WithModel("override-model"))
	require.NoError(t, err)

	assert.Equal(t, llm.RoleAssistant, msg.Role)
	assert.Equal(t, `{"name":"home","tags":["house"]}`, msg.Content)

	assert.Equal(t, "override-model", body["model"])
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok, "response_format must be sent")
	assert.Equal(t, "json_object", format["type"])
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	client := NewClient(config.ModelDef{APIKey: "k", ModelName: "m", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "x"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai api error")
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient(config.ModelDef{APIKey: "k", ModelName: "m", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "x"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestMapToOpenAI(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		msg := mapToOpenAI(llm.Message{Role: llm.RoleSystem, Content: "hello"})
		assert.Equal(t, "system", msg.Role)
		assert.Equal(t, "hello", msg.Content)
		assert.Empty(t, msg.MultiContent)
	})

	t.Run("vision", func(t *testing.T) {
		msg := mapToOpenAI(llm.Message{
			Role:    llm.RoleUser,
			Content: "what is this?",
			Images:  []string{"data:image/png;base64,AQID"},
		})
		assert.Empty(t, msg.Content)
		require.Len(t, msg.MultiContent, 2)
		assert.Equal(t, openai.ChatMessagePartTypeText, msg.MultiContent[0].Type)
		assert.Equal(t, "what is this?", msg.MultiContent[0].Text)
		assert.Equal(t, openai.ChatMessagePartTypeImageURL, msg.MultiContent[1].Type)
		assert.Equal(t, "data:image/png;base64,AQID", msg.MultiContent[1].ImageURL.URL)
	})
}
