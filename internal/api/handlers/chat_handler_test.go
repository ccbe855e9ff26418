package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obstetra/fetal-health-service/internal/api/handlers"
	"github.com/obstetra/fetal-health-service/internal/domain/entities"
)

type stubAgent struct {
	reply       entities.ChatReply
	lastMessage string
	lastData    map[string]any
}

func (s *stubAgent) Respond(ctx context.Context, message string, data map[string]any) entities.ChatReply {
	s.lastMessage = message
	s.lastData = data
	return s.reply
}

func postChat(t *testing.T, handler *handlers.ChatHandler, body, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	handler.Chat(w, req)
	return w
}

func TestChatHandler_RespondsToMessage(t *testing.T) {
	agent := &stubAgent{reply: entities.ChatReply{Success: true, Text: "hello"}}
	handler := handlers.NewChatHandler(agent, nil)

	w := postChat(t, handler, `{"message":"help"}`, "10.0.0.1:4000")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "help", agent.lastMessage)

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "hello", response["response"])
}

func TestChatHandler_ForwardsPredictionData(t *testing.T) {
	agent := &stubAgent{reply: entities.ChatReply{Success: true, Text: "ok"}}
	handler := handlers.NewChatHandler(agent, nil)

	postChat(t, handler, `{"message":"predict","data":{"accelerations":0.01}}`, "10.0.0.1:4000")

	require.NotNil(t, agent.lastData)
	number, ok := agent.lastData["accelerations"].(json.Number)
	require.True(t, ok)
	assert.Equal(t, "0.01", number.String())
}

func TestChatHandler_InvalidPayload(t *testing.T) {
	handler := handlers.NewChatHandler(&stubAgent{}, nil)

	w := postChat(t, handler, `{{{`, "10.0.0.1:4000")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "invalid request payload", response["response"])
}

func TestChatHandler_RateLimit(t *testing.T) {
	agent := &stubAgent{reply: entities.ChatReply{Success: true, Text: "ok"}}
	handler := handlers.NewChatHandler(agent, nil)

	for i := 0; i < 30; i++ {
		w := postChat(t, handler, `{"message":"help"}`, "10.0.0.7:4000")
		require.Equal(t, http.StatusOK, w.Code, i)
	}

	w := postChat(t, handler, `{"message":"help"}`, "10.0.0.7:4000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// a different client is unaffected
	w = postChat(t, handler, `{"message":"help"}`, "10.0.0.8:4000")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatHandler_RateLimitKeyUsesForwardedFor(t *testing.T) {
	agent := &stubAgent{reply: entities.ChatReply{Success: true, Text: "ok"}}
	handler := handlers.NewChatHandler(agent, nil)

	for i := 0; i < 30; i++ {
		req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"help"}`))
		req.RemoteAddr = "127.0.0.1:9999"
		req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
		w := httptest.NewRecorder()
		handler.Chat(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"help"}`))
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	w := httptest.NewRecorder()
	handler.Chat(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
