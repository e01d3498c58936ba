package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

// AccountResponse represents an account in API responses. The PIN hash
// never leaves the server.
type AccountResponse struct {
	ID        string          `json:"id"`
	Phone     string          `json:"phone"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Phone:     a.Phone,
		Name:      a.Name,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:           e.ID,
		AccountID:    e.AccountID,
		Type:         string(e.Kind),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Description:  e.Description,
		Timestamp:    e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// SendOTPResponse confirms that a code was issued. MockOTP carries the
// code back in demo deployments without an SMS provider.
type SendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	MockOTP string `json:"mock_otp,omitempty"`
}

// VerifyOTPResponse reports whether the phone is already registered.
type VerifyOTPResponse struct {
	Success    bool             `json:"success"`
	UserExists bool             `json:"user_exists"`
	User       *AccountResponse `json:"user,omitempty"`
}

// RegisterResponse returns the newly created account.
type RegisterResponse struct {
	Success bool             `json:"success"`
	User    *AccountResponse `json:"user"`
}

// LoginResponse returns the session token and account on success.
type LoginResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token"`
	User    *AccountResponse `json:"user"`
}

// BalanceResponse carries an account's current balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// TransactionsResponse lists ledger entries newest-first.
type TransactionsResponse struct {
	Transactions []*EntryResponse `json:"transactions"`
}

// TransferResponse confirms a committed transfer.
type TransferResponse struct {
	Success     bool            `json:"success"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	Transaction *EntryResponse  `json:"transaction"`
}

// TransferHintResponse is the structured transfer intent parsed out of
// an assistant reply.
type TransferHintResponse struct {
	ToPhone string          `json:"to_phone"`
	Amount  decimal.Decimal `json:"amount"`
}

// ChatResponse carries the assistant reply plus the balance shown to it.
type ChatResponse struct {
	Success      bool                  `json:"success"`
	Response     string                `json:"response"`
	UserBalance  decimal.Decimal       `json:"user_balance"`
	TransferHint *TransferHintResponse `json:"transfer_hint,omitempty"`
}

// ChatFromUseCase converts chat output to response.
func ChatFromUseCase(out *usecase.ChatOutput) *ChatResponse {
	resp := &ChatResponse{
		Success:     true,
		Response:    out.Reply,
		UserBalance: out.Balance,
	}
	if out.Hint != nil {
		resp.TransferHint = &TransferHintResponse{
			ToPhone: out.Hint.Phone,
			Amount:  out.Hint.Amount,
		}
	}
	return resp
}

// MismatchResponse is one account failing the ledger replay check.
type MismatchResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	Replayed  decimal.Decimal `json:"replayed"`
}

// ConsistencyResponse reports the ledger-wide replay check.
type ConsistencyResponse struct {
	Consistent bool                `json:"consistent"`
	Mismatches []*MismatchResponse `json:"mismatches,omitempty"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(report *usecase.ConsistencyReport) *ConsistencyResponse {
	resp := &ConsistencyResponse{Consistent: report.Consistent}
	for _, m := range report.Mismatches {
		resp.Mismatches = append(resp.Mismatches, &MismatchResponse{
			AccountID: m.AccountID,
			Balance:   m.Balance,
			Replayed:  m.Replayed,
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
