/**
 * @description
 * Suspension rules and the rule catalog. Rules are configuration, not business
 * data: the catalog is loaded once at startup and replaced wholesale when an
 * administrator changes the policy, so a running monitoring pass always works
 * against a consistent snapshot.
 */
package domain

import (
	"sort"
	"sync"
)

// RuleAction is the action a suspension rule triggers once its overdue
// threshold is met.
type RuleAction string

const (
	ActionRemind  RuleAction = "remind"
	ActionSuspend RuleAction = "suspend"
	ActionDisable RuleAction = "disable"
)

// SuspensionRule pairs an overdue-day threshold with the action to take once
// a website crosses it.
type SuspensionRule struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	DaysAfterDue int        `json:"days_after_due"`
	Action       RuleAction `json:"action"`
	IsActive     bool       `json:"is_active"`
}

// RuleCatalog holds the current escalation policy. Reads return a copy so a
// concurrent catalog update can never tear a pass mid-evaluation.
type RuleCatalog struct {
	mu    sync.RWMutex
	rules []SuspensionRule
}

// NewRuleCatalog creates a catalog with the given rules.
func NewRuleCatalog(rules []SuspensionRule) *RuleCatalog {
	c := &RuleCatalog{}
	c.Replace(rules)
	return c
}

// DefaultRules is the escalation policy shipped with the service: two
// reminders, then suspension at 15 days and disabling at 30.
func DefaultRules() []SuspensionRule {
	return []SuspensionRule{
		{ID: "rule-remind-first", Name: "First payment reminder", DaysAfterDue: 3, Action: ActionRemind, IsActive: true},
		{ID: "rule-remind-urgent", Name: "Urgent payment reminder", DaysAfterDue: 7, Action: ActionRemind, IsActive: true},
		{ID: "rule-suspend", Name: "Suspend website", DaysAfterDue: 15, Action: ActionSuspend, IsActive: true},
		{ID: "rule-disable", Name: "Disable website", DaysAfterDue: 30, Action: ActionDisable, IsActive: true},
	}
}

// ActiveRules returns the active rules sorted by threshold ascending. The
// returned slice is a snapshot owned by the caller.
func (c *RuleCatalog) ActiveRules() []SuspensionRule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := make([]SuspensionRule, 0, len(c.rules))
	for _, r := range c.rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DaysAfterDue < active[j].DaysAfterDue
	})
	return active
}

// Replace swaps the whole policy in one step. Passes that already took their
// snapshot keep evaluating against the old rules.
func (c *RuleCatalog) Replace(rules []SuspensionRule) {
	copied := make([]SuspensionRule, len(rules))
	copy(copied, rules)

	c.mu.Lock()
	c.rules = copied
	c.mu.Unlock()
}
