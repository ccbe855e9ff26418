package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/obstetra/fetal-health-service/internal/domain/entities"
	"github.com/obstetra/fetal-health-service/internal/domain/providers"
)

const (
	chatRateLimit  = 30
	chatRateWindow = time.Minute
)

// Agent defines the chat operations used by the handler.
type Agent interface {
	Respond(ctx context.Context, message string, data map[string]any) entities.ChatReply
}

// ChatHandler handles chat messages for the agent interface.
type ChatHandler struct {
	agent Agent
	cache providers.CacheProvider
	local *localRateLimiter
}

// NewChatHandler creates a new chat handler. The cache is used for rate
// limiting and may be nil; an in-process limiter takes over.
func NewChatHandler(agent Agent, cache providers.CacheProvider) *ChatHandler {
	return &ChatHandler{
		agent: agent,
		cache: cache,
		local: newLocalRateLimiter(),
	}
}

type chatRequest struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// Chat handles POST /api/chat. Each turn is independent; no conversation
// state is kept server-side.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var payload chatRequest
	if err := decoder.Decode(&payload); err != nil {
		respondWithJSON(w, http.StatusOK, chatResponse{
			Success:  false,
			Response: "invalid request payload",
		})
		return
	}

	key := "chat:rate:" + clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithJSON(w, http.StatusTooManyRequests, chatResponse{
			Success:  false,
			Response: "rate limit exceeded",
		})
		return
	}

	reply := h.agent.Respond(r.Context(), payload.Message, payload.Data)
	respondWithJSON(w, http.StatusOK, chatResponse{
		Success:  reply.Success,
		Response: reply.Text,
	})
}

func (h *ChatHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, chatRateLimit, chatRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= chatRateLimit {
		return false, chatRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(chatRateWindow.Seconds()))
	return true, chatRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

// localRateLimiter is the in-process fallback when Redis is unavailable.
type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
