package domain

import "testing"

func TestActiveRulesSortedAndFiltered(t *testing.T) {
	catalog := NewRuleCatalog([]SuspensionRule{
		{ID: "r3", Name: "disable", DaysAfterDue: 30, Action: ActionDisable, IsActive: true},
		{ID: "r1", Name: "remind", DaysAfterDue: 3, Action: ActionRemind, IsActive: true},
		{ID: "r4", Name: "retired", DaysAfterDue: 10, Action: ActionRemind, IsActive: false},
		{ID: "r2", Name: "suspend", DaysAfterDue: 15, Action: ActionSuspend, IsActive: true},
	})

	rules := catalog.ActiveRules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 active rules, got %d", len(rules))
	}
	for i := 1; i < len(rules); i++ {
		if rules[i-1].DaysAfterDue > rules[i].DaysAfterDue {
			t.Fatalf("rules not sorted ascending: %v", rules)
		}
	}
	for _, r := range rules {
		if !r.IsActive {
			t.Fatalf("inactive rule %q returned", r.ID)
		}
	}
}

func TestDefaultRulesPolicy(t *testing.T) {
	catalog := NewRuleCatalog(DefaultRules())
	rules := catalog.ActiveRules()

	want := []struct {
		days   int
		action RuleAction
	}{
		{3, ActionRemind},
		{7, ActionRemind},
		{15, ActionSuspend},
		{30, ActionDisable},
	}

	if len(rules) != len(want) {
		t.Fatalf("expected %d default rules, got %d", len(want), len(rules))
	}
	for i, w := range want {
		if rules[i].DaysAfterDue != w.days || rules[i].Action != w.action {
			t.Fatalf("rule %d = {%d %s}, want {%d %s}", i, rules[i].DaysAfterDue, rules[i].Action, w.days, w.action)
		}
	}
}

func TestReplaceDoesNotTearSnapshots(t *testing.T) {
	catalog := NewRuleCatalog(DefaultRules())
	snapshot := catalog.ActiveRules()

	catalog.Replace([]SuspensionRule{
		{ID: "only", Name: "only", DaysAfterDue: 1, Action: ActionRemind, IsActive: true},
	})

	if len(snapshot) != 4 {
		t.Fatalf("snapshot changed after Replace: %d rules", len(snapshot))
	}
	if got := catalog.ActiveRules(); len(got) != 1 {
		t.Fatalf("expected 1 rule after Replace, got %d", len(got))
	}
}
