package models

import "time"

// PushSubscription is one registered browser push endpoint. A user may
// have several (one per browser/device). The endpoint URL and encryption
// keys come straight from the client's PushManager subscription and are
// treated as an opaque blob by everything except the transport.
type PushSubscription struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Endpoint  string `gorm:"uniqueIndex;size:512"`
	P256dh    string `gorm:"size:256"`
	Auth      string `gorm:"size:64"`
	UserAgent string `gorm:"size:256"`
	UpdatedAt time.Time
	CreatedAt time.Time
}
