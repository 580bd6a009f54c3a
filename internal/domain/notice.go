/**
 * @description
 * Dunning notice payloads sent through the mailer service.
 */
package domain

import "fmt"

// DunningNotice is a templated message dispatched to a website's billing
// contact. The template name selects the mail body on the mailer side.
type DunningNotice struct {
	To          string `json:"to"`
	Domain      string `json:"domain"`
	Template    string `json:"template"`
	Subject     string `json:"subject"`
	DaysOverdue int    `json:"days_overdue"`
}

// NewReminderNotice builds the payment reminder for the website's current
// overdue bucket.
func NewReminderNotice(site *Website, daysOverdue int) DunningNotice {
	return DunningNotice{
		To:          site.ContactEmail,
		Domain:      site.Domain,
		Template:    ReminderTemplate(daysOverdue),
		Subject:     ReminderSubject(daysOverdue),
		DaysOverdue: daysOverdue,
	}
}

// NewSuspensionNotice builds the notice telling the customer their website
// has been suspended.
func NewSuspensionNotice(site *Website) DunningNotice {
	return DunningNotice{
		To:          site.ContactEmail,
		Domain:      site.Domain,
		Template:    "website_suspended",
		Subject:     fmt.Sprintf("Your website %s has been suspended", site.Domain),
		DaysOverdue: site.DaysOverdue,
	}
}

// NewDisableNotice builds the notice telling the customer their website has
// been disabled.
func NewDisableNotice(site *Website) DunningNotice {
	return DunningNotice{
		To:          site.ContactEmail,
		Domain:      site.Domain,
		Template:    "website_disabled",
		Subject:     fmt.Sprintf("Your website %s has been disabled", site.Domain),
		DaysOverdue: site.DaysOverdue,
	}
}
