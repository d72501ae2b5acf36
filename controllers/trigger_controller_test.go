package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
	"github.com/zeeshansheikh0001/calorie-tracker-sub001/services"
)

type stubRules struct {
	rules []models.ReminderRule
	err   error
}

func (s *stubRules) ListAllReminderRules(context.Context) ([]models.ReminderRule, error) {
	return s.rules, s.err
}

type stubEndpoints struct {
	byUser map[uint][]models.PushSubscription
}

func (s *stubEndpoints) ListEndpoints(_ context.Context, userID uint) ([]models.PushSubscription, error) {
	return s.byUser[userID], nil
}

type stubSender struct{ err error }

func (s *stubSender) Send(context.Context, models.PushSubscription, []byte) error {
	return s.err
}

func triggerRouter(rules *stubRules, endpoints *stubEndpoints, sender *stubSender, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	d := services.NewDispatcher(rules, endpoints, sender, time.UTC, zap.NewNop())
	tc := NewTriggerController(d, secret)
	// Pin the tick instant so rules written for 08:30 are always due.
	tc.now = func() time.Time {
		return time.Date(2024, time.January, 1, 8, 30, 0, 0, time.UTC)
	}
	r := gin.New()
	r.GET("/internal/cron/reminders", tc.RunReminderTick)
	return r
}

func TestRunReminderTick_RejectsBadSecret(t *testing.T) {
	r := triggerRouter(&stubRules{}, &stubEndpoints{}, &stubSender{}, "s3cret")

	for _, target := range []string{
		"/internal/cron/reminders",
		"/internal/cron/reminders?secret=wrong",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", target, w.Code)
		}
	}
}

func TestRunReminderTick_ReportsCounts(t *testing.T) {
	rules := &stubRules{rules: []models.ReminderRule{
		{UserID: 1, MealEnabled: true, MealTime: "08:30"},
	}}
	endpoints := &stubEndpoints{byUser: map[uint][]models.PushSubscription{
		1: {{ID: 1, UserID: 1, Endpoint: "https://push.example/a"}},
	}}
	r := triggerRouter(rules, endpoints, &stubSender{}, "s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/cron/reminders?secret=s3cret", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Delivered int `json:"delivered"`
		Failed    int `json:"failed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Delivered != 1 || body.Failed != 0 {
		t.Errorf("expected 1 delivered, got %+v", body)
	}
}

func TestRunReminderTick_PartialFailureIsStill200(t *testing.T) {
	rules := &stubRules{rules: []models.ReminderRule{
		{UserID: 1, MealEnabled: true, MealTime: "08:30"},
	}}
	endpoints := &stubEndpoints{byUser: map[uint][]models.PushSubscription{
		1: {{ID: 1, UserID: 1, Endpoint: "https://push.example/a"}},
	}}
	sender := &stubSender{err: errors.New("boom")}
	r := triggerRouter(rules, endpoints, sender, "s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/cron/reminders?secret=s3cret", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("per-endpoint failures must not fail the tick, got %d", w.Code)
	}
}

func TestRunReminderTick_InfrastructureFaultIs500(t *testing.T) {
	rules := &stubRules{err: errors.New("db unreachable")}
	r := triggerRouter(rules, &stubEndpoints{}, &stubSender{}, "s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/cron/reminders?secret=s3cret", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on rule store failure, got %d", w.Code)
	}
}
