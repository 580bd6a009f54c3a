/**
 * @description
 * Overdue-day calculation and reminder throttling rules. These are pure
 * functions so the monitoring pass can be tested without a clock or database.
 */
package domain

import (
	"math"
	"time"
)

// DaysOverdue returns how many whole days past due a payment is at the given
// instant. A payment becomes one day overdue the moment its due date passes;
// payments due in the future or right now are zero days overdue.
func DaysOverdue(now, dueDate time.Time) int {
	diff := now.Sub(dueDate)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// MaxRemindersFor returns the reminder cap for a given number of overdue days.
// The cap grows with the overdue bucket: one nudge in the first three days,
// two through day seven, three after that.
func MaxRemindersFor(daysOverdue int) int {
	switch {
	case daysOverdue <= 3:
		return 1
	case daysOverdue <= 7:
		return 2
	default:
		return 3
	}
}

// ReminderTemplate selects the dunning mail template for an overdue bucket.
func ReminderTemplate(daysOverdue int) string {
	switch {
	case daysOverdue <= 3:
		return "payment_reminder"
	case daysOverdue <= 7:
		return "payment_urgent"
	default:
		return "payment_final_notice"
	}
}

// ReminderSubject returns the mail subject for an overdue bucket.
func ReminderSubject(daysOverdue int) string {
	switch {
	case daysOverdue <= 3:
		return "Payment reminder: your invoice is overdue"
	case daysOverdue <= 7:
		return "Urgent: your payment is overdue"
	default:
		return "Final notice: your website will be suspended"
	}
}
