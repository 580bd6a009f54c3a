package domain

import (
	"testing"
	"time"
)

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due in the future", now.AddDate(0, 0, 10), 0},
		{"due exactly now", now, 0},
		{"due an hour ago rounds up to one day", now.Add(-time.Hour), 1},
		{"due exactly one day ago", now.AddDate(0, 0, -1), 1},
		{"due twenty days ago", now.AddDate(0, 0, -20), 20},
		{"partial day past a full day rounds up", now.Add(-25 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysOverdue(now, tt.due); got != tt.want {
				t.Fatalf("DaysOverdue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaxRemindersFor(t *testing.T) {
	tests := []struct {
		daysOverdue int
		want        int
	}{
		{1, 1},
		{3, 1},
		{4, 2},
		{7, 2},
		{8, 3},
		{30, 3},
	}

	for _, tt := range tests {
		if got := MaxRemindersFor(tt.daysOverdue); got != tt.want {
			t.Fatalf("MaxRemindersFor(%d) = %d, want %d", tt.daysOverdue, got, tt.want)
		}
	}
}

func TestReminderTemplateBuckets(t *testing.T) {
	if got := ReminderTemplate(3); got != "payment_reminder" {
		t.Fatalf("expected reminder template for 3 days, got %q", got)
	}
	if got := ReminderTemplate(7); got != "payment_urgent" {
		t.Fatalf("expected urgent template for 7 days, got %q", got)
	}
	if got := ReminderTemplate(8); got != "payment_final_notice" {
		t.Fatalf("expected final notice template for 8 days, got %q", got)
	}
}
