package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/adapter/http/handler"
	apimiddleware "github.com/ravikant-m/voicebank/internal/adapter/http/middleware"
	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_AuthRateLimiterThrottles(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.AuthRateLimiter = rl
	}))

	body := `{"phone":"+919876543210"}`

	req1 := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader(body))
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader(body))
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RateLimitSparesAccountRoutes(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.AuthRateLimiter = rl
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/acc-1/balance", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code == http.StatusTooManyRequests {
			t.Fatalf("account routes must not share the auth limiter")
		}
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"user_id":"acc-1","to_phone":"+919876543211","amount":"100"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transfer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/auth/send-otp",
		"POST /api/auth/verify-otp",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/accounts/{id}",
		"GET /api/accounts/{id}/balance",
		"GET /api/accounts/{id}/transactions",
		"POST /api/transfer",
		"POST /api/chat",
		"GET /api/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		AuthHandler:     handler.NewAuthHandler(stubAuthService{}, true),
		AccountHandler:  handler.NewAccountHandler(stubAccountService{}),
		TransferHandler: handler.NewTransferHandler(stubTransferService{}),
		ChatHandler:     handler.NewChatHandler(stubChatService{}),
		LedgerHandler:   handler.NewLedgerHandler(stubLedgerService{}),
		HealthHandler:   &handler.HealthHandler{},
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAuthService struct{}

func (stubAuthService) SendOTP(ctx context.Context, phone string) (string, error) {
	return "123456", nil
}

func (stubAuthService) VerifyOTP(ctx context.Context, phone, code string) (*domain.Account, error) {
	return nil, nil
}

func (stubAuthService) Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

func (stubAuthService) Login(ctx context.Context, phone, pin string) (string, *domain.Account, error) {
	return "token", &domain.Account{ID: "acc"}, nil
}

type stubAccountService struct{}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (stubAccountService) ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

type stubTransferService struct{}

func (stubTransferService) Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferOutput, error) {
	return &usecase.TransferOutput{Entry: &domain.Entry{ID: "e"}}, nil
}

type stubChatService struct{}

func (stubChatService) Chat(ctx context.Context, input usecase.ChatInput) (*usecase.ChatOutput, error) {
	return &usecase.ChatOutput{Reply: "hello"}, nil
}

type stubLedgerService struct{}

func (stubLedgerService) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return &usecase.ConsistencyReport{Consistent: true}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
