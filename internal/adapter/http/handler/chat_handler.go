package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ravikant-m/voicebank/internal/adapter/http/dto"
	"github.com/ravikant-m/voicebank/internal/infrastructure/metrics"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

// ChatService defines the behavior needed by ChatHandler.
type ChatService interface {
	Chat(ctx context.Context, input usecase.ChatInput) (*usecase.ChatOutput, error)
}

// ChatHandler handles assistant chat HTTP requests.
type ChatHandler struct {
	assistantUC ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(assistantUC ChatService) *ChatHandler {
	return &ChatHandler{assistantUC: assistantUC}
}

// Chat forwards one user turn to the assistant. Any transfer the reply
// suggests is returned as a hint; the client must submit it through the
// transfer endpoint where it is validated like any other.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.assistantUC.Chat(r.Context(), req.ToUseCaseInput())
	if err != nil {
		metrics.ChatRequests.WithLabelValues("error").Inc()
		writeError(w, mapDomainError(err), "failed to chat", err.Error())
		return
	}

	metrics.ChatRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, dto.ChatFromUseCase(out))
}
