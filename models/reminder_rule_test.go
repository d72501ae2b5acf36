package models

import (
	"testing"
	"time"
)

func TestMealRuleAccessor(t *testing.T) {
	testCases := []struct {
		name    string
		rule    ReminderRule
		ok      bool
		hour    int
		minute  int
	}{
		{"enabled with valid time", ReminderRule{MealEnabled: true, MealTime: "08:30"}, true, 8, 30},
		{"disabled", ReminderRule{MealEnabled: false, MealTime: "08:30"}, false, 0, 0},
		{"enabled with empty time", ReminderRule{MealEnabled: true}, false, 0, 0},
		{"enabled with garbage time", ReminderRule{MealEnabled: true, MealTime: "8.30pm"}, false, 0, 0},
		{"enabled with out-of-range hour", ReminderRule{MealEnabled: true, MealTime: "24:00"}, false, 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mr, ok := tc.rule.MealRule()
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && (mr.Hour != tc.hour || mr.Minute != tc.minute) {
				t.Errorf("expected %02d:%02d, got %02d:%02d", tc.hour, tc.minute, mr.Hour, mr.Minute)
			}
		})
	}
}

func TestHydrationRuleAccessor(t *testing.T) {
	if _, ok := (&ReminderRule{HydrationEnabled: true, HydrationFrequency: 0}).HydrationRule(); ok {
		t.Error("zero frequency must read as disabled")
	}
	if _, ok := (&ReminderRule{HydrationEnabled: true, HydrationFrequency: -3}).HydrationRule(); ok {
		t.Error("negative frequency must read as disabled")
	}
	hr, ok := (&ReminderRule{HydrationEnabled: true, HydrationFrequency: 2}).HydrationRule()
	if !ok || hr.FrequencyHours != 2 {
		t.Errorf("expected frequency 2, got %+v ok=%v", hr, ok)
	}
}

func TestWeighInRuleAccessor(t *testing.T) {
	rule := ReminderRule{WeighInEnabled: true, WeighInDay: "monday", WeighInTime: "08:00"}
	wr, ok := rule.WeighInRule()
	if !ok {
		t.Fatal("expected weigh-in rule")
	}
	if wr.Day != time.Monday || wr.Hour != 8 || wr.Minute != 0 {
		t.Errorf("unexpected rule %+v", wr)
	}

	rule.WeighInDay = "someday"
	if _, ok := rule.WeighInRule(); ok {
		t.Error("invalid day must read as disabled")
	}

	rule.WeighInDay = "Monday" // settings UI lowercases, but be tolerant
	if _, ok := rule.WeighInRule(); !ok {
		t.Error("mixed-case day should still parse")
	}
}
