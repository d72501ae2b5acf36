package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
	"github.com/zeeshansheikh0001/calorie-tracker-sub001/utils"
)

// ReminderService reads and writes the per-user reminder settings row.
// The dispatch path only ever reads it.
type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// ListAllReminderRules loads every user's settings row for one tick.
func (s *ReminderService) ListAllReminderRules(ctx context.Context) ([]models.ReminderRule, error) {
	var rules []models.ReminderRule
	if err := s.db.WithContext(ctx).Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// GetForUser returns the user's settings, or a zero row (everything
// disabled) if they have never saved any.
func (s *ReminderService) GetForUser(userID uint) (*models.ReminderRule, error) {
	var rule models.ReminderRule
	err := s.db.Where("user_id = ?", userID).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.ReminderRule{UserID: userID}, nil
		}
		return nil, err
	}
	return &rule, nil
}

// ReminderSettings is the update shape accepted from the settings UI.
type ReminderSettings struct {
	MealEnabled bool
	MealTime    string

	HydrationEnabled   bool
	HydrationFrequency int

	WeighInEnabled bool
	WeighInDay     string
	WeighInTime    string
}

func (in ReminderSettings) validate() error {
	if in.MealEnabled {
		if _, _, err := utils.ParseClock(in.MealTime); err != nil {
			return fmt.Errorf("meal reminder: %w", err)
		}
	}
	if in.HydrationEnabled && in.HydrationFrequency <= 0 {
		return fmt.Errorf("hydration reminder: frequency must be a positive number of hours")
	}
	if in.WeighInEnabled {
		if _, ok := utils.ParseWeekday(in.WeighInDay); !ok {
			return fmt.Errorf("weigh-in reminder: invalid day %q", in.WeighInDay)
		}
		if _, _, err := utils.ParseClock(in.WeighInTime); err != nil {
			return fmt.Errorf("weigh-in reminder: %w", err)
		}
	}
	return nil
}

// Upsert validates and saves the user's settings, creating the row on
// first save.
func (s *ReminderService) Upsert(userID uint, in ReminderSettings) (*models.ReminderRule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var rule models.ReminderRule
	err := s.db.Where("user_id = ?", userID).First(&rule).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	rule.UserID = userID
	rule.MealEnabled = in.MealEnabled
	rule.MealTime = in.MealTime
	rule.HydrationEnabled = in.HydrationEnabled
	rule.HydrationFrequency = in.HydrationFrequency
	rule.WeighInEnabled = in.WeighInEnabled
	rule.WeighInDay = in.WeighInDay
	rule.WeighInTime = in.WeighInTime

	if err := s.db.Save(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}
