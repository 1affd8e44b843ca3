package ratelimit

import (
	"context"
	"testing"

	"golang.org/x/time/rate"
)

func TestGetLimiter_Singleton(t *testing.T) {
	if GetLimiter() != GetLimiter() {
		t.Error("GetLimiter() returned different instances")
	}
}

func TestLimiter_UnlimitedInTests(t *testing.T) {
	l := New()
	for i := 0; i < 50; i++ {
		if !l.Allow(APISite) {
			t.Fatalf("Allow(APISite) = false on call %d, want unlimited in tests", i)
		}
	}
}

func TestLimiter_UnknownAPI(t *testing.T) {
	l := New()
	if !l.Allow(API("other")) {
		t.Error("Allow(unknown) = false, want true")
	}
	if err := l.Wait(context.Background(), API("other")); err != nil {
		t.Errorf("Wait(unknown) returned error: %v", err)
	}
}

func TestLimiter_Set(t *testing.T) {
	l := New()
	l.Set(APITelegram, rate.Limit(0.001), 1)

	if !l.Allow(APITelegram) {
		t.Fatal("first Allow() = false, want true")
	}
	if l.Allow(APITelegram) {
		t.Error("second Allow() = true, want false after burst is spent")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := New()
	l.Set(APITelegram, rate.Limit(0.001), 1)
	l.Allow(APITelegram)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Wait(ctx, APITelegram); err == nil {
		t.Error("Wait() with cancelled context returned nil error")
	}
}
