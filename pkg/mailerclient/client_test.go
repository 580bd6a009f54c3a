package mailerclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hostforge/payment-monitor-service/internal/domain"
)

func testNotice() domain.DunningNotice {
	return domain.DunningNotice{
		To:          "owner@alpha.example.com",
		Domain:      "alpha.example.com",
		Template:    "payment_reminder",
		Subject:     "Payment reminder: your invoice is overdue",
		DaysOverdue: 3,
	}
}

func TestSendDunningNotice(t *testing.T) {
	var received domain.DunningNotice
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/notifications/dunning" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.SendDunningNotice(context.Background(), testNotice()); err != nil {
		t.Fatalf("SendDunningNotice failed: %v", err)
	}
	if received.Template != "payment_reminder" || received.Domain != "alpha.example.com" {
		t.Fatalf("unexpected payload: %+v", received)
	}
}

func TestSendDunningNoticeRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.SendDunningNotice(context.Background(), testNotice()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestSendDunningNoticeDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.SendDunningNotice(context.Background(), testNotice()); err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}
