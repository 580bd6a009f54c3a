/**
 * @description
 * Action executor for the escalation engine. Each method applies one action
 * (remind, suspend, disable, activate) to one website: the local state change
 * is persisted first, then the external side effects (hosting control, mail)
 * are attempted. External failures are reported separately from persistence
 * failures and never roll back the persisted change.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/hostforge/payment-monitor-service/internal/domain"
)

// SystemActor is recorded as the actor for status changes made by the
// monitoring pass itself.
const SystemActor = "system"

// ActionOutcome describes what applying one action to one website did.
type ActionOutcome struct {
	Action domain.RuleAction
	// Applied is true when the local state change was persisted. It stays
	// false for guard/throttle no-ops.
	Applied bool
	// ExternalErrs holds failures from the mailer or hosting control that
	// happened after the local change was persisted.
	ExternalErrs []error
	// Err is set when persistence itself failed and nothing was applied.
	Err error
}

// Executor applies escalation actions against the store and the external
// collaborators.
type Executor struct {
	repo    Repository
	mailer  Mailer
	hosting HostingController
	logger  *slog.Logger
	now     func() time.Time
}

// NewExecutor creates an action executor.
func NewExecutor(repo Repository, mailer Mailer, hosting HostingController, logger *slog.Logger) *Executor {
	return &Executor{
		repo:    repo,
		mailer:  mailer,
		hosting: hosting,
		logger:  logger,
		now:     time.Now,
	}
}

// Remind sends one payment reminder if the website is still under the cap for
// its overdue bucket. The incremented counter is persisted before the mail is
// dispatched so an overlapping pass can never double-send.
func (e *Executor) Remind(ctx context.Context, site *domain.Website, daysOverdue int) ActionOutcome {
	outcome := ActionOutcome{Action: domain.ActionRemind}

	if site.RemindersSent >= domain.MaxRemindersFor(daysOverdue) {
		return outcome
	}

	count, err := e.repo.IncrementReminderCount(ctx, site.ID)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	site.RemindersSent = count
	outcome.Applied = true

	notice := domain.NewReminderNotice(site, daysOverdue)
	if err := e.mailer.SendDunningNotice(ctx, notice); err != nil {
		e.logger.Error("failed to send payment reminder", "website_id", site.ID, "domain", site.Domain, "error", err)
		outcome.ExternalErrs = append(outcome.ExternalErrs, err)
		return outcome
	}

	e.logger.Info("payment reminder sent", "website_id", site.ID, "domain", site.Domain, "days_overdue", daysOverdue, "reminders_sent", count)
	return outcome
}

// Suspend persists the suspended status and then blocks the website's hosting
// account and notifies the customer. The status guard makes it a no-op when
// the website is not in a suspendable status.
func (e *Executor) Suspend(ctx context.Context, site *domain.Website, reason, actor string) ActionOutcome {
	outcome := ActionOutcome{Action: domain.ActionSuspend}

	if !CanApply(domain.ActionSuspend, site.Status) {
		return outcome
	}

	suspendedAt := e.now()
	if err := e.repo.UpdateWebsiteStatus(ctx, site.ID, domain.StatusSuspended, &suspendedAt, reason, actor); err != nil {
		outcome.Err = err
		return outcome
	}
	site.Status = domain.StatusSuspended
	site.SuspensionDate = &suspendedAt
	site.SuspensionReason = reason
	outcome.Applied = true

	if err := e.hosting.SuspendAccount(ctx, site.Domain); err != nil {
		e.logger.Error("failed to suspend hosting account", "website_id", site.ID, "domain", site.Domain, "error", err)
		outcome.ExternalErrs = append(outcome.ExternalErrs, err)
	}
	if err := e.mailer.SendDunningNotice(ctx, domain.NewSuspensionNotice(site)); err != nil {
		e.logger.Error("failed to send suspension notice", "website_id", site.ID, "domain", site.Domain, "error", err)
		outcome.ExternalErrs = append(outcome.ExternalErrs, err)
	}

	e.logger.Info("website suspended", "website_id", site.ID, "domain", site.Domain, "reason", reason, "actor", actor)
	return outcome
}

// Disable persists the disabled status and then tears down the website's
// hosting account and notifies the customer. Already-disabled websites are a
// no-op.
func (e *Executor) Disable(ctx context.Context, site *domain.Website, reason, actor string) ActionOutcome {
	outcome := ActionOutcome{Action: domain.ActionDisable}

	if !CanApply(domain.ActionDisable, site.Status) {
		return outcome
	}

	disabledAt := e.now()
	if err := e.repo.UpdateWebsiteStatus(ctx, site.ID, domain.StatusDisabled, &disabledAt, reason, actor); err != nil {
		outcome.Err = err
		return outcome
	}
	site.Status = domain.StatusDisabled
	site.SuspensionDate = &disabledAt
	site.SuspensionReason = reason
	outcome.Applied = true

	if err := e.hosting.TerminateAccount(ctx, site.Domain); err != nil {
		e.logger.Error("failed to terminate hosting account", "website_id", site.ID, "domain", site.Domain, "error", err)
		outcome.ExternalErrs = append(outcome.ExternalErrs, err)
	}
	if err := e.mailer.SendDunningNotice(ctx, domain.NewDisableNotice(site)); err != nil {
		e.logger.Error("failed to send disable notice", "website_id", site.ID, "domain", site.Domain, "error", err)
		outcome.ExternalErrs = append(outcome.ExternalErrs, err)
	}

	e.logger.Info("website disabled", "website_id", site.ID, "domain", site.Domain, "reason", reason, "actor", actor)
	return outcome
}

// Activate returns a suspended or disabled website to active and unblocks its
// hosting account. Only operators call this; no rule ever does.
func (e *Executor) Activate(ctx context.Context, site *domain.Website, actor string) ActionOutcome {
	outcome := ActionOutcome{}

	if !CanActivate(site.Status) {
		return outcome
	}

	// An active site carries no suspension metadata; the acting operator is
	// still recorded against the status change.
	if err := e.repo.UpdateWebsiteStatus(ctx, site.ID, domain.StatusActive, nil, "", actor); err != nil {
		outcome.Err = err
		return outcome
	}
	site.Status = domain.StatusActive
	site.SuspensionDate = nil
	site.SuspensionReason = ""
	outcome.Applied = true

	if err := e.hosting.UnsuspendAccount(ctx, site.Domain); err != nil {
		e.logger.Error("failed to unsuspend hosting account", "website_id", site.ID, "domain", site.Domain, "error", err)
		outcome.ExternalErrs = append(outcome.ExternalErrs, err)
	}

	e.logger.Info("website activated", "website_id", site.ID, "domain", site.Domain, "actor", actor)
	return outcome
}
