package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pricewatch/internal/fetcher"
	"pricewatch/internal/logger"
)

func newTestNotifier(baseURL string) *Notifier {
	return NewNotifier(Config{
		BaseURL:   baseURL,
		BotToken:  "123:abc",
		ChannelID: "@prices",
		ParseMode: "Markdown",
		Timeout:   5 * time.Second,
	}, logger.Discard())
}

func TestNewNotifier_DefaultBaseURL(t *testing.T) {
	n := NewNotifier(Config{BotToken: "t", ChannelID: "c"}, logger.Discard())

	if n.cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", n.cfg.BaseURL, DefaultBaseURL)
	}
	if n.client == nil {
		t.Error("client is nil")
	}
}

func TestNotifier_Send_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/bot123:abc/sendMessage" {
			t.Errorf("path = %q, want /bot123:abc/sendMessage", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error: %v", err)
		}
		if got := r.PostForm.Get("chat_id"); got != "@prices" {
			t.Errorf("chat_id = %q, want @prices", got)
		}
		if got := r.PostForm.Get("text"); got != "💰 دلار: 1082500 تومان" {
			t.Errorf("text = %q", got)
		}
		if got := r.PostForm.Get("parse_mode"); got != "Markdown" {
			t.Errorf("parse_mode = %q, want Markdown", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true, "result": {"message_id": 42}}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	if err := newTestNotifier(server.URL).Send(context.Background(), "💰 دلار: 1082500 تومان"); err != nil {
		t.Fatalf("Send() returned unexpected error: %v", err)
	}
}

func TestNotifier_Send_NotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": false, "description": "Bad Request: chat not found"}`))
	}))
	defer server.Close()

	err := newTestNotifier(server.URL).Send(context.Background(), "hello")
	if !errors.Is(err, ErrNotDelivered) {
		t.Fatalf("Send() error = %v, want ErrNotDelivered", err)
	}
}

func TestNotifier_Send_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: can't parse entities"}`))
	}))
	defer server.Close()

	err := newTestNotifier(server.URL).Send(context.Background(), "*broken")
	if !errors.Is(err, ErrNotDelivered) {
		t.Fatalf("Send() error = %v, want ErrNotDelivered", err)
	}

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusBadRequest {
		t.Errorf("Send() error = %v, want FetchError with status 400", err)
	}
}

func TestNotifier_Send_OmitsEmptyParseMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if _, ok := r.PostForm["parse_mode"]; ok {
			t.Error("parse_mode sent although not configured")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	n := NewNotifier(Config{BaseURL: server.URL, BotToken: "t", ChannelID: "c"}, logger.Discard())
	if err := n.Send(context.Background(), "plain"); err != nil {
		t.Fatalf("Send() returned unexpected error: %v", err)
	}
}

func TestNotifier_Send_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := newTestNotifier(server.URL).Send(ctx, "hello"); err == nil {
		t.Error("Send() expected error for cancelled context, got nil")
	}
}
