package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
)

func TestNextMinute_StaysOnBoundary(t *testing.T) {
	testCases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"mid minute",
			time.Date(2024, time.January, 1, 8, 30, 17, 500, time.UTC),
			time.Date(2024, time.January, 1, 8, 31, 0, 0, time.UTC),
		},
		{
			"exactly on boundary advances a full minute",
			time.Date(2024, time.January, 1, 8, 30, 0, 0, time.UTC),
			time.Date(2024, time.January, 1, 8, 31, 0, 0, time.UTC),
		},
		{
			"just after boundary, as a drifted ticker would see it",
			time.Date(2024, time.January, 1, 8, 30, 0, 980_000_000, time.UTC),
			time.Date(2024, time.January, 1, 8, 31, 0, 0, time.UTC),
		},
		{
			"hour rollover",
			time.Date(2024, time.January, 1, 8, 59, 42, 0, time.UTC),
			time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextMinute(tc.now)
			if !got.Equal(tc.want) {
				t.Errorf("nextMinute(%v) = %v, want %v", tc.now, got, tc.want)
			}
			if got.Second() != 0 || got.Nanosecond() != 0 {
				t.Errorf("nextMinute(%v) not on a :00 boundary: %v", tc.now, got)
			}
		})
	}
}

func TestSchedulerTick_DeliversDueRules(t *testing.T) {
	rules := &fakeRuleSource{rules: []models.ReminderRule{mealRuleAt(1, "08:30")}}
	endpoints := &fakeEndpointSource{byUser: map[uint][]models.PushSubscription{
		1: {{ID: 10, UserID: 1, Endpoint: "https://push.example/u1"}},
	}}
	sender := &fakeSender{}

	s := NewScheduler(NewDispatcher(rules, endpoints, sender, time.UTC, zap.NewNop()), zap.NewNop())
	s.tick(context.Background(), tickInstant(t))

	if len(sender.sent) != 1 || sender.sent[0] != "https://push.example/u1" {
		t.Errorf("expected one delivery, got %v", sender.sent)
	}
}

func TestSchedulerTick_SurvivesRuleQueryFailure(t *testing.T) {
	rules := &fakeRuleSource{err: errors.New("db unreachable")}
	s := NewScheduler(NewDispatcher(rules, &fakeEndpointSource{}, &fakeSender{}, time.UTC, zap.NewNop()), zap.NewNop())

	// Must log and return; the next minute's tick is the retry.
	s.tick(context.Background(), tickInstant(t))
}
