package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/usecase"
)

// SendOTPRequest asks for a login code for a phone number.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// VerifyOTPRequest submits the code received for a phone number.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	PIN   string `json:"pin"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Phone: r.Phone,
		Name:  r.Name,
		PIN:   r.PIN,
	}
}

// LoginRequest authenticates with phone and PIN.
type LoginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

// TransferRequest moves money from the sender to the phone's owner.
type TransferRequest struct {
	UserID  string          `json:"user_id"`
	ToPhone string          `json:"to_phone"`
	Amount  decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SenderAccountID: r.UserID,
		ReceiverPhone:   r.ToPhone,
		Amount:          r.Amount,
	}
}

// ChatRequest carries one user turn of an assistant session.
type ChatRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ToUseCaseInput converts to use case input.
func (r *ChatRequest) ToUseCaseInput() usecase.ChatInput {
	return usecase.ChatInput{
		AccountID: r.UserID,
		SessionID: r.SessionID,
		Message:   r.Message,
	}
}
