package redis

import (
	"context"
	"testing"
	"time"
)

func TestOTPStore_PutGetDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewOTPStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, "+919876543210", "123456", time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	code, err := store.Get(ctx, "+919876543210")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if code != "123456" {
		t.Fatalf("expected stored code, got %q", code)
	}

	if err := store.Delete(ctx, "+919876543210"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	code, err = store.Get(ctx, "+919876543210")
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if code != "" {
		t.Fatalf("expected no code after delete, got %q", code)
	}
}

func TestOTPStore_GetMissingReturnsEmpty(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewOTPStore(client)

	code, err := store.Get(context.Background(), "+910000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "" {
		t.Fatalf("expected empty code, got %q", code)
	}
}

func TestOTPStore_PutReplacesCode(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewOTPStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, "+919876543210", "111111", time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Put(ctx, "+919876543210", "222222", time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	code, err := store.Get(ctx, "+919876543210")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if code != "222222" {
		t.Fatalf("expected latest code, got %q", code)
	}
}

func TestOTPStore_CodeExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewOTPStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, "+919876543210", "123456", 30*time.Second); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	mr.FastForward(time.Minute)

	code, err := store.Get(ctx, "+919876543210")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if code != "" {
		t.Fatalf("expected expired code to be gone, got %q", code)
	}
}
