package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/russhil/telegram-ai-calendar/internal/config"
	"github.com/russhil/telegram-ai-calendar/internal/dedup"
	"github.com/russhil/telegram-ai-calendar/internal/intent"
)

type fakeResolver struct {
	result intent.Intent
	calls  int
}

func (f *fakeResolver) Resolve(_ context.Context, text string) intent.Intent {
	f.calls++
	return f.result
}

type fakeDispatcher struct {
	reply string
	calls int
	last  intent.Intent
}

func (f *fakeDispatcher) Dispatch(_ context.Context, in intent.Intent) string {
	f.calls++
	f.last = in
	return f.reply
}

type fakeSender struct {
	err   error
	sent  []string
	chats []int64
}

func (f *fakeSender) Send(chatID int64, text string) error {
	f.chats = append(f.chats, chatID)
	f.sent = append(f.sent, text)
	return f.err
}

type env struct {
	webhook    *Webhook
	resolver   *fakeResolver
	dispatcher *fakeDispatcher
	sender     *fakeSender
}

func newEnv(secret string, limit config.RateLimitConfig) *env {
	resolver := &fakeResolver{result: intent.Intent{Action: intent.ActionList}}
	dispatcher := &fakeDispatcher{reply: "Upcoming events:\nStandup at 2025-01-01T09:00:00+00:00"}
	sender := &fakeSender{}

	return &env{
		webhook:    NewWebhook(resolver, dispatcher, sender, dedup.NewStore(nil), limit, secret),
		resolver:   resolver,
		dispatcher: dispatcher,
		sender:     sender,
	}
}

func noLimit() config.RateLimitConfig {
	return config.RateLimitConfig{Enabled: false, MaxHits: 1, Window: time.Minute}
}

func post(t *testing.T, webhook *Webhook, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	w := httptest.NewRecorder()
	webhook.Handle(w, req)
	return w
}

func updateBody(updateID int, chatID int64, text string) string {
	return fmt.Sprintf(`{"update_id":%d,"message":{"message_id":1,"chat":{"id":%d},"text":%q}}`, updateID, chatID, text)
}

func TestWebhookHappyPath(t *testing.T) {
	e := newEnv("", noLimit())

	w := post(t, e.webhook, updateBody(1, 42, "what's coming up?"), nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 ack, got %d", w.Code)
	}
	if e.resolver.calls != 1 {
		t.Errorf("Expected one resolve call, got %d", e.resolver.calls)
	}
	if e.dispatcher.calls != 1 {
		t.Errorf("Expected one dispatch call, got %d", e.dispatcher.calls)
	}
	if len(e.sender.sent) != 1 || e.sender.sent[0] != e.dispatcher.reply {
		t.Errorf("Expected dispatcher reply sent, got %v", e.sender.sent)
	}
	if e.sender.chats[0] != 42 {
		t.Errorf("Expected reply to chat 42, got %d", e.sender.chats[0])
	}
}

func TestWebhookIgnoresUnroutablePayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "definitely not json"},
		{name: "no message", body: `{"update_id":7}`},
		{name: "no chat", body: `{"update_id":7,"message":{"message_id":1,"text":"hello"}}`},
		{name: "no text", body: `{"update_id":7,"message":{"message_id":1,"chat":{"id":42}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv("", noLimit())

			w := post(t, e.webhook, tt.body, nil)

			if w.Code != http.StatusOK {
				t.Errorf("Unroutable payload must still be acked, got %d", w.Code)
			}
			if e.resolver.calls != 0 || e.dispatcher.calls != 0 || len(e.sender.sent) != 0 {
				t.Error("Unroutable payload must trigger zero outbound calls")
			}
		})
	}
}

func TestWebhookSecret(t *testing.T) {
	t.Run("mismatch is rejected", func(t *testing.T) {
		e := newEnv("s3cret", noLimit())

		w := post(t, e.webhook, updateBody(1, 42, "hello"), http.Header{secretTokenHeader: []string{"wrong"}})

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403 for forged delivery, got %d", w.Code)
		}
		if e.resolver.calls != 0 {
			t.Error("Forged delivery must not reach the resolver")
		}
	})

	t.Run("match passes through", func(t *testing.T) {
		e := newEnv("s3cret", noLimit())

		w := post(t, e.webhook, updateBody(1, 42, "hello"), http.Header{secretTokenHeader: []string{"s3cret"}})

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if e.resolver.calls != 1 {
			t.Error("Valid delivery should reach the resolver")
		}
	})
}

func TestWebhookDropsRedeliveredUpdates(t *testing.T) {
	e := newEnv("", noLimit())

	post(t, e.webhook, updateBody(9, 42, "list my events"), nil)
	w := post(t, e.webhook, updateBody(9, 42, "list my events"), nil)

	if w.Code != http.StatusOK {
		t.Errorf("Redelivery must still be acked, got %d", w.Code)
	}
	if e.resolver.calls != 1 {
		t.Errorf("Redelivered update must not be reprocessed, resolver called %d times", e.resolver.calls)
	}
}

func TestWebhookStartCommand(t *testing.T) {
	e := newEnv("", noLimit())

	w := post(t, e.webhook, updateBody(1, 42, "/start"), nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if e.resolver.calls != 0 {
		t.Error("/start must not trigger a completion call")
	}
	if len(e.sender.sent) != 1 || e.sender.sent[0] != greetingReply {
		t.Errorf("Expected greeting reply, got %v", e.sender.sent)
	}
}

func TestWebhookRateLimit(t *testing.T) {
	limit := config.RateLimitConfig{Enabled: true, MaxHits: 1, Window: time.Minute}
	e := newEnv("", limit)

	post(t, e.webhook, updateBody(1, 42, "first"), nil)
	w := post(t, e.webhook, updateBody(2, 42, "second"), nil)

	if w.Code != http.StatusOK {
		t.Errorf("Over-limit delivery must still be acked, got %d", w.Code)
	}
	if e.resolver.calls != 1 {
		t.Errorf("Over-limit message must be dropped, resolver called %d times", e.resolver.calls)
	}
}

func TestWebhookSendFailureStillAcks(t *testing.T) {
	e := newEnv("", noLimit())
	e.sender.err = errors.New("telegram unavailable")

	w := post(t, e.webhook, updateBody(1, 42, "list my events"), nil)

	if w.Code != http.StatusOK {
		t.Errorf("Send failure must not affect the ack, got %d", w.Code)
	}
}
