package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
)

// SubscriptionService owns the push endpoint registry: the browser
// subscriptions a user has registered for reminders.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Register stores a browser subscription, upserting on the endpoint URL
// so re-subscribing from the same browser updates keys in place.
func (s *SubscriptionService) Register(userID uint, endpoint, p256dh, auth, userAgent string) (*models.PushSubscription, error) {
	var existing models.PushSubscription
	err := s.db.Where("endpoint = ?", endpoint).First(&existing).Error
	if err == nil {
		existing.UserID = userID
		existing.P256dh = p256dh
		existing.Auth = auth
		existing.UserAgent = userAgent
		existing.UpdatedAt = time.Now()
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := &models.PushSubscription{
		UserID:    userID,
		Endpoint:  endpoint,
		P256dh:    p256dh,
		Auth:      auth,
		UserAgent: userAgent,
	}
	if err := s.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Remove deletes a user's subscription by endpoint URL. Removing an
// endpoint that is not registered is not an error.
func (s *SubscriptionService) Remove(userID uint, endpoint string) error {
	return s.db.Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushSubscription{}).Error
}

// ListEndpoints returns every subscription registered for the user.
func (s *SubscriptionService) ListEndpoints(ctx context.Context, userID uint) ([]models.PushSubscription, error) {
	var subs []models.PushSubscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// DropDead removes a subscription whose endpoint the push service
// reported gone. Called from the dispatcher's cleanup hook.
func (s *SubscriptionService) DropDead(ctx context.Context, sub models.PushSubscription) error {
	return s.db.WithContext(ctx).Delete(&models.PushSubscription{}, sub.ID).Error
}
