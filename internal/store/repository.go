/**
 * @description
 * This file implements the data access layer for the payment-monitor-service.
 * It contains all the SQL queries for reading website payment state and
 * persisting the changes the monitoring pass makes (overdue days, reminder
 * counts, status transitions). Website records are owned by the billing
 * service; this layer never inserts or deletes them.
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostforge/payment-monitor-service/internal/domain"
)

// ErrWebsiteNotFound is returned when a website id does not exist.
var ErrWebsiteNotFound = errors.New("website not found")

// Repository handles database operations for monitored websites.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const websiteColumns = `
        id, domain, contact_email, last_payment_date, next_payment_due,
        days_overdue, status, auto_suspend_enabled, reminders_sent,
        suspension_date, COALESCE(suspension_reason, '')
`

func scanWebsite(row pgx.Row) (*domain.Website, error) {
	var site domain.Website
	err := row.Scan(
		&site.ID,
		&site.Domain,
		&site.ContactEmail,
		&site.LastPaymentDate,
		&site.NextPaymentDue,
		&site.DaysOverdue,
		&site.Status,
		&site.AutoSuspendEnabled,
		&site.RemindersSent,
		&site.SuspensionDate,
		&site.SuspensionReason,
	)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

// ListAutoSuspendWebsites returns every website eligible for automated
// monitoring. Websites with auto-suspend disabled are excluded here so the
// monitoring pass never sees them.
func (r *Repository) ListAutoSuspendWebsites(ctx context.Context) ([]domain.Website, error) {
	query := `
        SELECT ` + websiteColumns + `
        FROM websites
        WHERE auto_suspend_enabled = TRUE
        ORDER BY next_payment_due ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list websites: %w", err)
	}
	defer rows.Close()

	var sites []domain.Website
	for rows.Next() {
		site, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan website row: %w", err)
		}
		sites = append(sites, *site)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sites, nil
}

// GetWebsite retrieves a single website by id.
func (r *Repository) GetWebsite(ctx context.Context, websiteID string) (*domain.Website, error) {
	query := `
        SELECT ` + websiteColumns + `
        FROM websites
        WHERE id = $1
    `
	site, err := scanWebsite(r.db.QueryRow(ctx, query, websiteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWebsiteNotFound
		}
		return nil, err
	}
	return site, nil
}

// ListOverdueWebsites returns all websites with at least one day overdue,
// regardless of the auto-suspend flag. Used by the read-only admin listing.
func (r *Repository) ListOverdueWebsites(ctx context.Context) ([]domain.Website, error) {
	query := `
        SELECT ` + websiteColumns + `
        FROM websites
        WHERE days_overdue > 0
        ORDER BY days_overdue DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue websites: %w", err)
	}
	defer rows.Close()

	var sites []domain.Website
	for rows.Next() {
		site, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan website row: %w", err)
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}

// UpdateDaysOverdue persists the recomputed overdue-day count for a website.
func (r *Repository) UpdateDaysOverdue(ctx context.Context, websiteID string, daysOverdue int) error {
	query := `
        UPDATE websites
        SET days_overdue = $2, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, websiteID, daysOverdue)
	if err != nil {
		return fmt.Errorf("failed to update overdue days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWebsiteNotFound
	}
	return nil
}

// UpdateWebsiteStatus persists a status transition together with its metadata:
// when the suspension happened, which rule caused it, and who triggered it
// ("system" for the monitoring pass, the operator id for manual actions).
func (r *Repository) UpdateWebsiteStatus(ctx context.Context, websiteID string, status domain.WebsiteStatus, suspensionDate *time.Time, reason, actor string) error {
	query := `
        UPDATE websites
        SET status = $2,
            suspension_date = $3,
            suspension_reason = $4,
            status_changed_by = $5,
            updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, websiteID, status, suspensionDate, reason, actor)
	if err != nil {
		return fmt.Errorf("failed to update website status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWebsiteNotFound
	}
	return nil
}

// IncrementReminderCount bumps the reminder counter by one and returns the new
// value. The increment happens in the database so two overlapping passes can
// never both read the same stale count.
func (r *Repository) IncrementReminderCount(ctx context.Context, websiteID string) (int, error) {
	var count int
	query := `
        UPDATE websites
        SET reminders_sent = reminders_sent + 1, updated_at = NOW()
        WHERE id = $1
        RETURNING reminders_sent
    `
	err := r.db.QueryRow(ctx, query, websiteID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrWebsiteNotFound
		}
		return 0, fmt.Errorf("failed to increment reminder count: %w", err)
	}
	return count, nil
}
