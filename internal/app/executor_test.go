package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hostforge/payment-monitor-service/internal/domain"
)

type failingHostingStub struct {
	err error
}

func (f *failingHostingStub) SuspendAccount(ctx context.Context, domainName string) error {
	return f.err
}
func (f *failingHostingStub) UnsuspendAccount(ctx context.Context, domainName string) error {
	return f.err
}
func (f *failingHostingStub) TerminateAccount(ctx context.Context, domainName string) error {
	return f.err
}

func TestSuspendKeepsLocalChangeWhenHostingFails(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newRepoStub(activeSite("w1", "alpha.example.com", now, 16))
	mailer := &mailerStub{failFor: map[string]error{}}
	hosting := &failingHostingStub{err: errors.New("control plane timeout")}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	executor := NewExecutor(repo, mailer, hosting, logger)
	executor.now = func() time.Time { return now }

	site, err := repo.GetWebsite(context.Background(), "w1")
	if err != nil {
		t.Fatalf("GetWebsite failed: %v", err)
	}

	outcome := executor.Suspend(context.Background(), site, "Suspend website", SystemActor)

	if !outcome.Applied {
		t.Fatal("local state change must be applied despite the hosting failure")
	}
	if len(outcome.ExternalErrs) != 1 {
		t.Fatalf("externalErrs = %v, want the hosting failure", outcome.ExternalErrs)
	}
	if outcome.Err != nil {
		t.Fatalf("unexpected persistence error: %v", outcome.Err)
	}
	if got := repo.site(t, "w1").Status; got != domain.StatusSuspended {
		t.Fatalf("persisted status = %s, want suspended", got)
	}
}

func TestRemindPersistsCountBeforeDispatch(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newRepoStub(activeSite("w1", "alpha.example.com", now, 5))
	mailer := &mailerStub{failFor: map[string]error{
		"alpha.example.com": errors.New("smtp relay unreachable"),
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	executor := NewExecutor(repo, mailer, &hostingStub{}, logger)

	site, err := repo.GetWebsite(context.Background(), "w1")
	if err != nil {
		t.Fatalf("GetWebsite failed: %v", err)
	}

	outcome := executor.Remind(context.Background(), site, 5)

	if !outcome.Applied {
		t.Fatal("reminder increment must be applied even when the mailer fails")
	}
	if len(outcome.ExternalErrs) != 1 {
		t.Fatalf("externalErrs = %v, want the mailer failure", outcome.ExternalErrs)
	}
	if got := repo.site(t, "w1").RemindersSent; got != 1 {
		t.Fatalf("persisted remindersSent = %d, want 1", got)
	}
}

func TestRemindRespectsThrottleCap(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	site := activeSite("w1", "alpha.example.com", now, 2)
	site.RemindersSent = 1 // already at the cap for the first bucket
	repo := newRepoStub(site)
	mailer := &mailerStub{failFor: map[string]error{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	executor := NewExecutor(repo, mailer, &hostingStub{}, logger)

	fresh, err := repo.GetWebsite(context.Background(), "w1")
	if err != nil {
		t.Fatalf("GetWebsite failed: %v", err)
	}

	outcome := executor.Remind(context.Background(), fresh, 2)

	if outcome.Applied {
		t.Fatal("reminder above the bucket cap must be a no-op")
	}
	if len(mailer.sent()) != 0 {
		t.Fatalf("unexpected mail dispatched: %v", mailer.sent())
	}
}
