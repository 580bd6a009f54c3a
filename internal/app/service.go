/**
 * @description
 * This file contains the core business logic of the payment-monitor-service:
 * the monitoring pass that walks every auto-suspend-enabled website, evaluates
 * the escalation rules against its overdue days, and applies the resulting
 * actions. Websites are processed by a bounded worker pool; failures are
 * isolated per website and collected into the pass summary.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hostforge/payment-monitor-service/internal/config"
	"github.com/hostforge/payment-monitor-service/internal/domain"
)

// ErrInvalidTransition is returned when a manual action is not legal for the
// website's current status.
var ErrInvalidTransition = errors.New("status transition not allowed")

// Repository defines the database operations the monitoring engine needs.
type Repository interface {
	ListAutoSuspendWebsites(ctx context.Context) ([]domain.Website, error)
	ListOverdueWebsites(ctx context.Context) ([]domain.Website, error)
	GetWebsite(ctx context.Context, websiteID string) (*domain.Website, error)
	UpdateDaysOverdue(ctx context.Context, websiteID string, daysOverdue int) error
	UpdateWebsiteStatus(ctx context.Context, websiteID string, status domain.WebsiteStatus, suspensionDate *time.Time, reason, actor string) error
	IncrementReminderCount(ctx context.Context, websiteID string) (int, error)
}

// Mailer dispatches templated dunning notices to customers.
type Mailer interface {
	SendDunningNotice(ctx context.Context, notice domain.DunningNotice) error
}

// HostingController controls the customer's actual hosting account. All three
// operations are idempotent by contract.
type HostingController interface {
	SuspendAccount(ctx context.Context, domainName string) error
	UnsuspendAccount(ctx context.Context, domainName string) error
	TerminateAccount(ctx context.Context, domainName string) error
}

// EventPublisher publishes events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

const passCompletedRoutingKey = "monitoring.pass.completed"

// passCompletedEvent is the admin summary published after a pass that took
// at least one action.
type passCompletedEvent struct {
	RunID       string                   `json:"run_id"`
	CompletedAt time.Time                `json:"completed_at"`
	Results     domain.MonitoringResults `json:"results"`
}

// MonitorService runs monitoring passes and manual operator actions.
type MonitorService struct {
	repo     Repository
	executor *Executor
	events   EventPublisher
	catalog  *domain.RuleCatalog
	logger   *slog.Logger
	config   config.Config
	locks    *keyedMutex
	now      func() time.Time
}

// NewMonitorService creates the monitoring service with its collaborators.
func NewMonitorService(repo Repository, mailer Mailer, hosting HostingController, events EventPublisher, catalog *domain.RuleCatalog, logger *slog.Logger, cfg config.Config) *MonitorService {
	return &MonitorService{
		repo:     repo,
		executor: NewExecutor(repo, mailer, hosting, logger),
		events:   events,
		catalog:  catalog,
		logger:   logger,
		config:   cfg,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// passSummary is the thread-safe accumulator for one pass.
type passSummary struct {
	mu      sync.Mutex
	results domain.MonitoringResults
}

func (p *passSummary) addProcessed() {
	p.mu.Lock()
	p.results.Processed++
	p.mu.Unlock()
}

func (p *passSummary) record(outcome ActionOutcome, site *domain.Website) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if outcome.Applied {
		switch outcome.Action {
		case domain.ActionRemind:
			p.results.RemindersSent++
		case domain.ActionSuspend:
			p.results.WebsitesSuspended++
		case domain.ActionDisable:
			p.results.WebsitesDisabled++
		}
	}
	if outcome.Err != nil {
		p.results.Errors = append(p.results.Errors, fmt.Sprintf("%s: %v", site.Domain, outcome.Err))
	}
	for _, err := range outcome.ExternalErrs {
		p.results.Errors = append(p.results.Errors, fmt.Sprintf("%s: %v", site.Domain, err))
	}
}

func (p *passSummary) addError(msg string) {
	p.mu.Lock()
	p.results.Errors = append(p.results.Errors, msg)
	p.mu.Unlock()
}

func (p *passSummary) snapshot() domain.MonitoringResults {
	p.mu.Lock()
	defer p.mu.Unlock()

	results := p.results
	results.Errors = make([]string, len(p.results.Errors))
	copy(results.Errors, p.results.Errors)
	return results
}

// RunPass executes one full monitoring pass and returns its summary. It only
// returns an error when the website listing itself fails; everything past
// that point is isolated per website and reported in the summary's error
// list.
func (s *MonitorService) RunPass(ctx context.Context) (*domain.MonitoringResults, error) {
	runID := uuid.NewString()
	started := s.now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.config.MonitorPassTimeout)*time.Second)
	defer cancel()

	// One snapshot of the policy for the whole pass.
	rules := s.catalog.ActiveRules()

	sites, err := s.repo.ListAutoSuspendWebsites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list websites for monitoring: %w", err)
	}

	s.logger.Info("payment monitoring pass started", "run_id", runID, "websites", len(sites), "rules", len(rules))

	summary := &passSummary{}
	jobs := make(chan domain.Website)
	var wg sync.WaitGroup

	// Never spawn more workers than there is work; an empty pass starts none.
	workers := s.config.MonitorWorkerCount
	if workers > len(sites) {
		workers = len(sites)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for site := range jobs {
				if ctx.Err() != nil {
					summary.addError(fmt.Sprintf("%s: not processed: %v", site.Domain, ctx.Err()))
					continue
				}
				s.processWebsite(ctx, site, rules, summary)
			}
		}()
	}

	for _, site := range sites {
		jobs <- site
	}
	close(jobs)
	wg.Wait()

	results := summary.snapshot()

	if results.ActionsTaken() {
		event := passCompletedEvent{RunID: runID, CompletedAt: s.now(), Results: results}
		if err := s.events.Publish(ctx, s.config.AdminEventExchange, passCompletedRoutingKey, event); err != nil {
			// The pass itself succeeded; losing the admin summary is not fatal.
			s.logger.Error("failed to publish pass summary event", "run_id", runID, "error", err)
		}
	}

	s.logger.Info("payment monitoring pass finished",
		"run_id", runID,
		"duration", s.now().Sub(started).String(),
		"processed", results.Processed,
		"reminders_sent", results.RemindersSent,
		"suspended", results.WebsitesSuspended,
		"disabled", results.WebsitesDisabled,
		"errors", len(results.Errors),
	)

	return &results, nil
}

// processWebsite evaluates the rule set against one website and applies every
// rule whose threshold is met, in ascending threshold order. The status guard
// and the reminder throttle keep repeated evaluation idempotent.
func (s *MonitorService) processWebsite(ctx context.Context, listed domain.Website, rules []domain.SuspensionRule, summary *passSummary) {
	unlock := s.locks.lock(listed.ID)
	defer unlock()

	summary.addProcessed()

	days := domain.DaysOverdue(s.now(), listed.NextPaymentDue)
	if err := s.repo.UpdateDaysOverdue(ctx, listed.ID, days); err != nil {
		summary.addError(fmt.Sprintf("%s: %v", listed.Domain, err))
		return
	}
	if days == 0 {
		return
	}

	// Re-read under the lock: an overlapping pass or a manual action may have
	// changed the status or reminder count since the listing was taken.
	site, err := s.repo.GetWebsite(ctx, listed.ID)
	if err != nil {
		summary.addError(fmt.Sprintf("%s: %v", listed.Domain, err))
		return
	}
	site.DaysOverdue = days

	for _, rule := range rules {
		if days < rule.DaysAfterDue {
			// Rules are sorted ascending, nothing further can match.
			break
		}

		var outcome ActionOutcome
		switch rule.Action {
		case domain.ActionRemind:
			outcome = s.executor.Remind(ctx, site, days)
		case domain.ActionSuspend:
			outcome = s.executor.Suspend(ctx, site, rule.Name, SystemActor)
		case domain.ActionDisable:
			outcome = s.executor.Disable(ctx, site, rule.Name, SystemActor)
		default:
			summary.addError(fmt.Sprintf("%s: unknown rule action %q", site.Domain, rule.Action))
			continue
		}
		summary.record(outcome, site)
	}
}

// ManualSuspend suspends a website on an operator's request, bypassing the
// overdue checks but not the status guard.
func (s *MonitorService) ManualSuspend(ctx context.Context, websiteID, operator string) (*domain.Website, error) {
	unlock := s.locks.lock(websiteID)
	defer unlock()

	site, err := s.repo.GetWebsite(ctx, websiteID)
	if err != nil {
		return nil, err
	}

	outcome := s.executor.Suspend(ctx, site, domain.ManualRule, operator)
	if outcome.Err != nil {
		return nil, outcome.Err
	}
	if !outcome.Applied {
		return nil, fmt.Errorf("%w: cannot suspend website in status %q", ErrInvalidTransition, site.Status)
	}
	return site, nil
}

// ManualActivate returns a suspended or disabled website to active on an
// operator's request. This is the only way back from suspended or disabled.
func (s *MonitorService) ManualActivate(ctx context.Context, websiteID, operator string) (*domain.Website, error) {
	unlock := s.locks.lock(websiteID)
	defer unlock()

	site, err := s.repo.GetWebsite(ctx, websiteID)
	if err != nil {
		return nil, err
	}

	outcome := s.executor.Activate(ctx, site, operator)
	if outcome.Err != nil {
		return nil, outcome.Err
	}
	if !outcome.Applied {
		return nil, fmt.Errorf("%w: cannot activate website in status %q", ErrInvalidTransition, site.Status)
	}
	return site, nil
}

// ListOverdue returns the current overdue snapshot for the admin UI.
func (s *MonitorService) ListOverdue(ctx context.Context) ([]domain.Website, error) {
	return s.repo.ListOverdueWebsites(ctx)
}
