package app

import (
	"testing"

	"github.com/hostforge/payment-monitor-service/internal/domain"
)

func TestCanApply(t *testing.T) {
	tests := []struct {
		action domain.RuleAction
		status domain.WebsiteStatus
		want   bool
	}{
		{domain.ActionRemind, domain.StatusActive, true},
		{domain.ActionRemind, domain.StatusPendingPayment, true},
		{domain.ActionRemind, domain.StatusSuspended, true},
		{domain.ActionRemind, domain.StatusDisabled, true},

		{domain.ActionSuspend, domain.StatusActive, true},
		{domain.ActionSuspend, domain.StatusPendingPayment, true},
		{domain.ActionSuspend, domain.StatusSuspended, false},
		{domain.ActionSuspend, domain.StatusDisabled, false},

		{domain.ActionDisable, domain.StatusActive, true},
		{domain.ActionDisable, domain.StatusPendingPayment, true},
		{domain.ActionDisable, domain.StatusSuspended, true},
		{domain.ActionDisable, domain.StatusDisabled, false},
	}

	for _, tt := range tests {
		if got := CanApply(tt.action, tt.status); got != tt.want {
			t.Fatalf("CanApply(%s, %s) = %v, want %v", tt.action, tt.status, got, tt.want)
		}
	}
}

func TestCanActivate(t *testing.T) {
	if CanActivate(domain.StatusActive) {
		t.Fatal("active website should not be activatable")
	}
	if CanActivate(domain.StatusPendingPayment) {
		t.Fatal("pending-payment website should not be activatable")
	}
	if !CanActivate(domain.StatusSuspended) {
		t.Fatal("suspended website should be activatable")
	}
	if !CanActivate(domain.StatusDisabled) {
		t.Fatal("disabled website should be activatable")
	}
}
