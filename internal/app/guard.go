/**
 * @description
 * Status guard for escalation actions. This is a pure decision table so that
 * applying an action is idempotent across repeated monitoring passes: a second
 * pass over an already-suspended website must not re-suspend it or re-send the
 * suspension notice.
 */
package app

import "github.com/hostforge/payment-monitor-service/internal/domain"

// CanApply reports whether an escalation action is legal for a website in the
// given status. Reminders are always legal (the reminder throttle is enforced
// separately), suspension only from a live status, and disabling from any
// status except disabled itself.
func CanApply(action domain.RuleAction, status domain.WebsiteStatus) bool {
	switch action {
	case domain.ActionRemind:
		return true
	case domain.ActionSuspend:
		return status == domain.StatusActive || status == domain.StatusPendingPayment
	case domain.ActionDisable:
		return status != domain.StatusDisabled
	default:
		return false
	}
}

// CanActivate reports whether a website can be manually returned to active.
// Activation is the only backward transition and is never triggered by a rule.
func CanActivate(status domain.WebsiteStatus) bool {
	return status == domain.StatusSuspended || status == domain.StatusDisabled
}
