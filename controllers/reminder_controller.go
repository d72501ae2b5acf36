package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
	"github.com/zeeshansheikh0001/calorie-tracker-sub001/services"
)

type ReminderController struct {
	Reminders  *services.ReminderService
	Dispatcher *services.Dispatcher
	Log        *zap.Logger
}

func NewReminderController(rs *services.ReminderService, d *services.Dispatcher, log *zap.Logger) *ReminderController {
	return &ReminderController{Reminders: rs, Dispatcher: d, Log: log}
}

type reminderKindTimed struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

type reminderSettingsBody struct {
	MealReminder      reminderKindTimed `json:"mealReminder"`
	HydrationReminder struct {
		Enabled   bool `json:"enabled"`
		Frequency int  `json:"frequency"`
	} `json:"hydrationReminder"`
	WeighInReminder struct {
		Enabled   bool   `json:"enabled"`
		DayOfWeek string `json:"dayOfWeek"`
		Time      string `json:"time"`
	} `json:"weighInReminder"`
}

func settingsBody(rule *models.ReminderRule) reminderSettingsBody {
	var body reminderSettingsBody
	body.MealReminder.Enabled = rule.MealEnabled
	body.MealReminder.Time = rule.MealTime
	body.HydrationReminder.Enabled = rule.HydrationEnabled
	body.HydrationReminder.Frequency = rule.HydrationFrequency
	body.WeighInReminder.Enabled = rule.WeighInEnabled
	body.WeighInReminder.DayOfWeek = rule.WeighInDay
	body.WeighInReminder.Time = rule.WeighInTime
	return body
}

// GET /user/reminders
func (rc *ReminderController) GetReminders(c *gin.Context) {
	uid := c.GetUint("userID")

	rule, err := rc.Reminders.GetForUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settingsBody(rule))
}

// PUT /user/reminders
//
// A successful save also pushes a confirmation notification to the
// user's endpoints, so they immediately see that push delivery works.
func (rc *ReminderController) UpdateReminders(c *gin.Context) {
	uid := c.GetUint("userID")

	var req reminderSettingsBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	rule, err := rc.Reminders.Upsert(uid, services.ReminderSettings{
		MealEnabled:        req.MealReminder.Enabled,
		MealTime:           req.MealReminder.Time,
		HydrationEnabled:   req.HydrationReminder.Enabled,
		HydrationFrequency: req.HydrationReminder.Frequency,
		WeighInEnabled:     req.WeighInReminder.Enabled,
		WeighInDay:         req.WeighInReminder.DayOfWeek,
		WeighInTime:        req.WeighInReminder.Time,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	go rc.sendConfirmation(uid)

	c.JSON(http.StatusOK, settingsBody(rule))
}

func (rc *ReminderController) sendConfirmation(userID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	outcomes := rc.Dispatcher.SendToUser(ctx, userID, models.NotificationPayload{
		Title: "Reminders Updated!",
		Body:  "Your reminder settings have been saved.",
		Type:  models.NotificationConfirmation,
	})
	delivered, failed := services.SummarizeOutcomes(outcomes)
	if failed > 0 {
		rc.Log.Warn("confirmation push partially failed",
			zap.Uint("userID", userID),
			zap.Int("delivered", delivered),
			zap.Int("failed", failed),
		)
	}
}
