package services

import (
	"time"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
)

// Notification text per rule kind. The client keys its routing off the
// Type field, not these strings.
const (
	mealTitle = "Time to log your meal!"
	mealBody  = "Don't forget to log your meal for today."

	waterTitle = "Stay Hydrated!"
	waterBody  = "Time to drink some water."

	weighInTitle = "Weekly Weigh-In Reminder!"
	weighInBody  = "Time to track your progress."
)

// EvaluateRule decides whether any of a user's reminders fire at the
// given instant and returns the payload to deliver, or nil.
//
// now must already be in the zone reminder times are configured in; the
// function only looks at its hour, minute and weekday. Rule kinds are
// checked in fixed priority order (meal, hydration, weigh-in) and the
// first match wins, so a user receives at most one notification per
// evaluation. Pure: no I/O, no clock reads, same inputs same result.
func EvaluateRule(rule models.ReminderRule, now time.Time) *models.NotificationPayload {
	hour, minute := now.Hour(), now.Minute()

	if mr, ok := rule.MealRule(); ok && hour == mr.Hour && minute == mr.Minute {
		return &models.NotificationPayload{
			Title: mealTitle,
			Body:  mealBody,
			Type:  models.NotificationMealReminder,
		}
	}

	// HydrationRule reads as disabled for frequency <= 0, so the modulo
	// below can never divide by zero.
	if hr, ok := rule.HydrationRule(); ok && minute == 0 && hour%hr.FrequencyHours == 0 {
		return &models.NotificationPayload{
			Title: waterTitle,
			Body:  waterBody,
			Type:  models.NotificationWaterReminder,
		}
	}

	if wr, ok := rule.WeighInRule(); ok && now.Weekday() == wr.Day && hour == wr.Hour && minute == wr.Minute {
		return &models.NotificationPayload{
			Title: weighInTitle,
			Body:  weighInBody,
			Type:  models.NotificationWeighInReminder,
		}
	}

	return nil
}
