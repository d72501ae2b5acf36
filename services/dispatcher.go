package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
)

// RuleSource is the reminder settings store as the dispatcher sees it.
type RuleSource interface {
	ListAllReminderRules(ctx context.Context) ([]models.ReminderRule, error)
}

// EndpointSource is the push endpoint registry as the dispatcher sees it.
type EndpointSource interface {
	ListEndpoints(ctx context.Context, userID uint) ([]models.PushSubscription, error)
}

// PushSender delivers one payload to one endpoint.
type PushSender interface {
	Send(ctx context.Context, sub models.PushSubscription, payload []byte) error
}

// Broadcaster mirrors a fired reminder to the user's connected app
// sessions. Optional.
type Broadcaster interface {
	BroadcastToUser(userID uint, payload any)
}

// Dispatcher runs one reminder tick: evaluate every user's rules against
// the tick instant and fan each firing payload out to all of the user's
// push endpoints.
//
// Delivery is best-effort with no retry: a DeliveryError is terminal for
// the tick and the next tick starts fresh. Failures are isolated at the
// narrowest scope that can continue, so a failed endpoint never affects
// the user's other endpoints, and a user with no endpoints is skipped,
// not failed. Only the shared rule query aborts the tick.
type Dispatcher struct {
	rules     RuleSource
	endpoints EndpointSource
	sender    PushSender
	loc       *time.Location
	log       *zap.Logger

	// Hub, when set, receives every fired payload for websocket mirror
	// delivery.
	Hub Broadcaster

	// OnEndpointGone, when set, is called synchronously for each
	// endpoint the push service reported gone, so the registry can drop
	// the dead registration.
	OnEndpointGone func(ctx context.Context, sub models.PushSubscription)
}

func NewDispatcher(rules RuleSource, endpoints EndpointSource, sender PushSender, loc *time.Location, log *zap.Logger) *Dispatcher {
	if loc == nil {
		loc = time.Local
	}
	return &Dispatcher{
		rules:     rules,
		endpoints: endpoints,
		sender:    sender,
		loc:       loc,
		log:       log,
	}
}

// RunTick evaluates all users for one instant and delivers. The returned
// outcomes cover every attempted (user, endpoint) pair; the error is
// non-nil only for an infrastructure fault in the shared rule query.
func (d *Dispatcher) RunTick(ctx context.Context, now time.Time) ([]models.DeliveryOutcome, error) {
	rules, err := d.rules.ListAllReminderRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminder rules: %w", err)
	}

	localNow := now.In(d.loc)

	var (
		mu       sync.Mutex
		outcomes []models.DeliveryOutcome
		wg       sync.WaitGroup
	)
	record := func(batch []models.DeliveryOutcome) {
		mu.Lock()
		outcomes = append(outcomes, batch...)
		mu.Unlock()
	}

	for _, rule := range rules {
		payload := EvaluateRule(rule, localNow)
		if payload == nil {
			continue
		}
		wg.Add(1)
		go func(userID uint, payload models.NotificationPayload) {
			defer wg.Done()
			record(d.deliverToUser(ctx, userID, payload))
		}(rule.UserID, *payload)
	}
	wg.Wait()

	return outcomes, nil
}

// SendToUser fans a single ad-hoc payload (e.g. the settings-saved
// confirmation) out to one user's endpoints.
func (d *Dispatcher) SendToUser(ctx context.Context, userID uint, payload models.NotificationPayload) []models.DeliveryOutcome {
	return d.deliverToUser(ctx, userID, payload)
}

func (d *Dispatcher) deliverToUser(ctx context.Context, userID uint, payload models.NotificationPayload) []models.DeliveryOutcome {
	if d.Hub != nil {
		d.Hub.BroadcastToUser(userID, map[string]any{
			"kind":         "reminder.fired",
			"notification": payload,
		})
	}

	subs, err := d.endpoints.ListEndpoints(ctx, userID)
	if err != nil {
		// Stays local to this user; every other firing user still
		// delivers this tick.
		d.log.Warn("list endpoints failed",
			zap.Uint("userID", userID),
			zap.Error(err),
		)
		return nil
	}
	if len(subs) == 0 {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		d.log.Error("marshal payload failed", zap.Uint("userID", userID), zap.Error(err))
		return nil
	}

	var (
		mu       sync.Mutex
		outcomes = make([]models.DeliveryOutcome, 0, len(subs))
		wg       sync.WaitGroup
	)
	for _, sub := range subs {
		wg.Add(1)
		go func(sub models.PushSubscription) {
			defer wg.Done()
			outcome := models.DeliveryOutcome{
				UserID:         userID,
				SubscriptionID: sub.ID,
				Endpoint:       sub.Endpoint,
				Succeeded:      true,
			}
			if err := d.sender.Send(ctx, sub, raw); err != nil {
				outcome.Succeeded = false
				outcome.Error = err.Error()
				d.handleSendError(ctx, sub, err)
			}
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
		}(sub)
	}
	wg.Wait()
	return outcomes
}

func (d *Dispatcher) handleSendError(ctx context.Context, sub models.PushSubscription, err error) {
	var de *DeliveryError
	if !errors.As(err, &de) {
		d.log.Warn("push send failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	switch de.Kind {
	case DeliveryEndpointGone:
		d.log.Info("push endpoint gone", zap.String("endpoint", sub.Endpoint))
		if d.OnEndpointGone != nil {
			d.OnEndpointGone(ctx, sub)
		}
	case DeliveryUnauthorized:
		// Key misconfiguration hits every endpoint the same way; make
		// it loud.
		d.log.Error("push rejected as unauthorized, check VAPID keys", zap.Error(err))
	default:
		d.log.Warn("push send failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
	}
}

// SummarizeOutcomes counts delivered and failed attempts for logging and
// the trigger response.
func SummarizeOutcomes(outcomes []models.DeliveryOutcome) (delivered, failed int) {
	for _, o := range outcomes {
		if o.Succeeded {
			delivered++
		} else {
			failed++
		}
	}
	return delivered, failed
}
