package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
)

// transferMarker is the free-text prefix the assistant emits when the
// user asks to move money. Anything after it is an advisory hint only;
// an actual transfer still runs through TransferUseCase validation.
const transferMarker = "TRANSFER_REQUEST:"

// AssistantUseCase delegates conversation to the external chat service
// with the caller's account context rendered into the system prompt.
type AssistantUseCase struct {
	client      AssistantClient
	accountRepo AccountRepository
}

// NewAssistantUseCase creates a new AssistantUseCase.
func NewAssistantUseCase(client AssistantClient, accountRepo AccountRepository) *AssistantUseCase {
	return &AssistantUseCase{
		client:      client,
		accountRepo: accountRepo,
	}
}

// ChatInput is one user turn in a session.
type ChatInput struct {
	AccountID string
	SessionID string
	Message   string
}

// TransferHint is a parsed transfer intent from the assistant's reply.
type TransferHint struct {
	Phone  string
	Amount decimal.Decimal
}

// ChatOutput carries the assistant's reply, the balance it was shown,
// and an optional transfer hint.
type ChatOutput struct {
	Reply   string
	Balance decimal.Decimal
	Hint    *TransferHint
}

// Chat loads the account, renders its context into the system prompt
// and forwards the message to the chat provider.
func (uc *AssistantUseCase) Chat(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	reply, err := uc.client.Send(ctx, input.SessionID, SystemPrompt(account), input.Message)
	if err != nil {
		return nil, err
	}

	return &ChatOutput{
		Reply:   reply,
		Balance: account.Balance,
		Hint:    ParseTransferHint(reply),
	}, nil
}

// SystemPrompt renders the account context handed to the assistant. It
// embeds the holder's name, phone and formatted balance and nothing
// else; in particular the PIN never reaches the provider.
func SystemPrompt(account *domain.Account) string {
	return fmt.Sprintf(`You are VoiceBank AI, a helpful banking assistant for %s.

User's current balance: %s
User's phone: %s

You can help with:
- Checking account balance
- Viewing recent transactions
- Making fund transfers (ask for recipient phone and amount)
- Answering questions about banking services
- Setting reminders
- Providing interest rate information

Always be concise, friendly, and secure. For transfers, confirm details before processing.
Speak naturally in English or Hindi based on user preference.
If user asks to transfer money, respond with: "%s phone_number, amount"`,
		account.Name, FormatINR(account.Balance), account.Phone, transferMarker)
}

// ParseTransferHint extracts a "TRANSFER_REQUEST: phone, amount" marker
// from the assistant's reply. Malformed markers are ignored.
func ParseTransferHint(reply string) *TransferHint {
	idx := strings.Index(reply, transferMarker)
	if idx < 0 {
		return nil
	}

	rest := reply[idx+len(transferMarker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}

	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return nil
	}

	phone := strings.TrimSpace(parts[0])
	if domain.ValidatePhone(phone) != nil {
		return nil
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[1]), `"`)))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	return &TransferHint{Phone: phone, Amount: amount}
}

// FormatINR renders an amount as rupees with thousands grouping, e.g.
// "₹50,000.00".
func FormatINR(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	return sign + "₹" + b.String() + "." + fracPart
}
