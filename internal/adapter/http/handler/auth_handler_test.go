package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/adapter/http/dto"
	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

type authServiceStub struct {
	sendOTPFn   func(ctx context.Context, phone string) (string, error)
	verifyOTPFn func(ctx context.Context, phone, code string) (*domain.Account, error)
	registerFn  func(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	loginFn     func(ctx context.Context, phone, pin string) (string, *domain.Account, error)
}

func (s *authServiceStub) SendOTP(ctx context.Context, phone string) (string, error) {
	return s.sendOTPFn(ctx, phone)
}

func (s *authServiceStub) VerifyOTP(ctx context.Context, phone, code string) (*domain.Account, error) {
	return s.verifyOTPFn(ctx, phone, code)
}

func (s *authServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *authServiceStub) Login(ctx context.Context, phone, pin string) (string, *domain.Account, error) {
	return s.loginFn(ctx, phone, pin)
}

func TestAuthHandler_SendOTP_ExposesCodeInDemoMode(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		sendOTPFn: func(ctx context.Context, phone string) (string, error) {
			return "123456", nil
		},
	}, true)

	body, _ := json.Marshal(dto.SendOTPRequest{Phone: "+919876543210"})
	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SendOTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.SendOTPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.MockOTP != "123456" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_SendOTP_HidesCodeInProduction(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		sendOTPFn: func(ctx context.Context, phone string) (string, error) {
			return "123456", nil
		},
	}, false)

	body, _ := json.Marshal(dto.SendOTPRequest{Phone: "+919876543210"})
	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SendOTP(rec, req)

	var resp dto.SendOTPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MockOTP != "" {
		t.Fatalf("expected code to be withheld, got %q", resp.MockOTP)
	}
}

func TestAuthHandler_SendOTP_InvalidPhone(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		sendOTPFn: func(ctx context.Context, phone string) (string, error) {
			return "", domain.ErrInvalidPhone
		},
	}, true)

	body, _ := json.Marshal(dto.SendOTPRequest{Phone: "abc"})
	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SendOTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_VerifyOTP_RegisteredUser(t *testing.T) {
	account := &domain.Account{ID: "acc-1", Phone: "+919876543210", Name: "Ravi"}
	handler := NewAuthHandler(&authServiceStub{
		verifyOTPFn: func(ctx context.Context, phone, code string) (*domain.Account, error) {
			if phone != "+919876543210" || code != "123456" {
				t.Fatalf("unexpected args: %s %s", phone, code)
			}
			return account, nil
		},
	}, true)

	body, _ := json.Marshal(dto.VerifyOTPRequest{Phone: "+919876543210", OTP: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.VerifyOTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.VerifyOTPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.UserExists || resp.User == nil || resp.User.ID != "acc-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_VerifyOTP_UnregisteredPhone(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		verifyOTPFn: func(ctx context.Context, phone, code string) (*domain.Account, error) {
			return nil, nil
		},
	}, true)

	body, _ := json.Marshal(dto.VerifyOTPRequest{Phone: "+919876543210", OTP: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.VerifyOTP(rec, req)

	var resp dto.VerifyOTPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.UserExists || resp.User != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_VerifyOTP_WrongCode(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		verifyOTPFn: func(ctx context.Context, phone, code string) (*domain.Account, error) {
			return nil, domain.ErrInvalidOTP
		},
	}, true)

	body, _ := json.Marshal(dto.VerifyOTPRequest{Phone: "+919876543210", OTP: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.VerifyOTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	account := &domain.Account{
		ID:      "acc-1",
		Phone:   "+919876543210",
		Name:    "Ravi",
		Balance: decimal.RequireFromString("50000"),
	}

	var captured usecase.RegisterInput
	handler := NewAuthHandler(&authServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, true)

	body, _ := json.Marshal(dto.RegisterRequest{Phone: "+919876543210", Name: "Ravi", PIN: "1234"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Phone != "+919876543210" || captured.PIN != "1234" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User == nil || !resp.User.Balance.Equal(decimal.RequireFromString("50000")) {
		t.Fatalf("expected opening balance in response, got %+v", resp.User)
	}
}

func TestAuthHandler_Register_PhoneTaken(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrPhoneTaken
		},
	}, true)

	body, _ := json.Marshal(dto.RegisterRequest{Phone: "+919876543210", Name: "Ravi", PIN: "1234"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	account := &domain.Account{ID: "acc-1", Phone: "+919876543210"}
	handler := NewAuthHandler(&authServiceStub{
		loginFn: func(ctx context.Context, phone, pin string) (string, *domain.Account, error) {
			return "token-1", account, nil
		},
	}, true)

	body, _ := json.Marshal(dto.LoginRequest{Phone: "+919876543210", PIN: "1234"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "token-1" || resp.User == nil || resp.User.ID != "acc-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		loginFn: func(ctx context.Context, phone, pin string) (string, *domain.Account, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}, true)

	body, _ := json.Marshal(dto.LoginRequest{Phone: "+919876543210", PIN: "0000"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
