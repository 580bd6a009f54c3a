/**
 * @description
 * This file defines the core domain models for the payment-monitor-service.
 * It includes the Website struct that maps to the database table holding each
 * customer site's billing and lifecycle state.
 */
package domain

import "time"

// WebsiteStatus represents the lifecycle state of a hosted website.
type WebsiteStatus string

const (
	StatusActive         WebsiteStatus = "active"
	StatusPendingPayment WebsiteStatus = "pending_payment"
	StatusSuspended      WebsiteStatus = "suspended"
	StatusDisabled       WebsiteStatus = "disabled"
)

// ManualRule is recorded as the applied rule when an operator suspends or
// activates a website directly instead of the monitoring pass doing it.
const ManualRule = "manual"

// Website represents one monitored customer site and its payment state.
// Billing records themselves live in the billing service; this engine only
// reads the due date and updates status, reminder count and overdue days.
type Website struct {
	ID                 string        `json:"id"`
	Domain             string        `json:"domain"`
	ContactEmail       string        `json:"contact_email"`
	LastPaymentDate    *time.Time    `json:"last_payment_date,omitempty"`
	NextPaymentDue     time.Time     `json:"next_payment_due"`
	DaysOverdue        int           `json:"days_overdue"`
	Status             WebsiteStatus `json:"status"`
	AutoSuspendEnabled bool          `json:"auto_suspend_enabled"`
	RemindersSent      int           `json:"reminders_sent"`
	SuspensionDate     *time.Time    `json:"suspension_date,omitempty"`
	SuspensionReason   string        `json:"suspension_reason,omitempty"`
}

// MonitoringResults is the aggregated outcome of one monitoring pass.
// This is the shape returned by the trigger endpoint and published to the
// admin event exchange.
type MonitoringResults struct {
	Processed         int      `json:"processed"`
	RemindersSent     int      `json:"remindersSent"`
	WebsitesSuspended int      `json:"websitesSuspended"`
	WebsitesDisabled  int      `json:"websitesDisabled"`
	Errors            []string `json:"errors"`
}

// ActionsTaken reports whether the pass changed anything. The admin summary
// notification is only sent when it did.
func (r MonitoringResults) ActionsTaken() bool {
	return r.RemindersSent > 0 || r.WebsitesSuspended > 0 || r.WebsitesDisabled > 0
}
