package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ravikant-m/voicebank/internal/adapter/http/dto"
	"github.com/ravikant-m/voicebank/internal/infrastructure/metrics"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferOutput, error)
}

// TransferHandler handles transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create executes a transfer to the phone's owner.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		metrics.TransferFailures.WithLabelValues(metrics.TransferFailureReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	metrics.TransfersCompleted.Inc()
	metrics.TransferAmount.Observe(req.Amount.InexactFloat64())

	writeJSON(w, http.StatusOK, dto.TransferResponse{
		Success:     true,
		NewBalance:  out.NewBalance,
		Transaction: dto.EntryFromDomain(out.Entry),
	})
}
