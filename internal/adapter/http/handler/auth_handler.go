package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ravikant-m/voicebank/internal/adapter/http/dto"
	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/infrastructure/metrics"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	SendOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone, code string) (*domain.Account, error)
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, phone, pin string) (string, *domain.Account, error)
}

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authUC AuthService
	// exposeOTP echoes the generated code in the response for demo
	// deployments that have no SMS gateway.
	exposeOTP bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC AuthService, exposeOTP bool) *AuthHandler {
	return &AuthHandler{authUC: authUC, exposeOTP: exposeOTP}
}

// SendOTP issues a one-time code for a phone number.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	code, err := h.authUC.SendOTP(r.Context(), req.Phone)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to send OTP", err.Error())
		return
	}

	metrics.OTPIssued.Inc()

	resp := dto.SendOTPResponse{
		Success: true,
		Message: "OTP sent successfully",
	}
	if h.exposeOTP {
		resp.MockOTP = code
	}

	writeJSON(w, http.StatusOK, resp)
}

// VerifyOTP checks a submitted code and reports whether the phone is
// already registered.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.authUC.VerifyOTP(r.Context(), req.Phone, req.OTP)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify OTP", err.Error())
		return
	}

	resp := dto.VerifyOTPResponse{Success: true}
	if account != nil {
		resp.UserExists = true
		resp.User = dto.AccountFromDomain(account)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Register creates a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.authUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register", err.Error())
		return
	}

	metrics.Registrations.Inc()

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		Success: true,
		User:    dto.AccountFromDomain(account),
	})
}

// Login authenticates with phone and PIN and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, account, err := h.authUC.Login(r.Context(), req.Phone, req.PIN)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginFailures.Inc()
		}
		writeError(w, mapDomainError(err), "failed to login", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Success: true,
		Token:   token,
		User:    dto.AccountFromDomain(account),
	})
}
