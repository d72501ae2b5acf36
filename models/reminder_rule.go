package models

import (
	"time"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/utils"
)

// ReminderRule holds all of a user's reminder settings on a single row.
// The settings UI stores flags and schedule fields flattened; the accessor
// methods below expose each kind as a tagged optional so callers never see
// an enabled flag paired with an unparsable schedule.
type ReminderRule struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex"`

	MealEnabled bool   `gorm:"default:false"`
	MealTime    string `gorm:"size:5"` // "08:30", 24h

	HydrationEnabled   bool `gorm:"default:false"`
	HydrationFrequency int  // hours between reminders

	WeighInEnabled bool   `gorm:"default:false"`
	WeighInDay     string `gorm:"size:9"` // lowercase weekday name
	WeighInTime    string `gorm:"size:5"`

	UpdatedAt time.Time
	CreatedAt time.Time
}

type MealRule struct {
	Hour   int
	Minute int
}

type HydrationRule struct {
	FrequencyHours int
}

type WeighInRule struct {
	Day    time.Weekday
	Hour   int
	Minute int
}

// MealRule returns the meal schedule if the reminder is enabled and its
// time field parses.
func (r *ReminderRule) MealRule() (MealRule, bool) {
	if !r.MealEnabled {
		return MealRule{}, false
	}
	h, m, err := utils.ParseClock(r.MealTime)
	if err != nil {
		return MealRule{}, false
	}
	return MealRule{Hour: h, Minute: m}, true
}

// HydrationRule returns the hydration schedule. A frequency of zero or
// less is invalid input and reads as disabled.
func (r *ReminderRule) HydrationRule() (HydrationRule, bool) {
	if !r.HydrationEnabled || r.HydrationFrequency <= 0 {
		return HydrationRule{}, false
	}
	return HydrationRule{FrequencyHours: r.HydrationFrequency}, true
}

// WeighInRule returns the weigh-in schedule if enabled and both the day
// name and time parse.
func (r *ReminderRule) WeighInRule() (WeighInRule, bool) {
	if !r.WeighInEnabled {
		return WeighInRule{}, false
	}
	day, ok := utils.ParseWeekday(r.WeighInDay)
	if !ok {
		return WeighInRule{}, false
	}
	h, m, err := utils.ParseClock(r.WeighInTime)
	if err != nil {
		return WeighInRule{}, false
	}
	return WeighInRule{Day: day, Hour: h, Minute: m}, true
}
