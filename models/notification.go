package models

// NotificationType tags a push payload so the client can route clicks.
type NotificationType string

const (
	NotificationMealReminder    NotificationType = "meal_reminder"
	NotificationWaterReminder   NotificationType = "water_reminder"
	NotificationWeighInReminder NotificationType = "weigh_in_reminder"
	NotificationConfirmation    NotificationType = "reminder_confirmation"
	NotificationGeneral         NotificationType = "general"
)

// NotificationPayload is the wire JSON carried in the push message body.
// It is transient: built per firing rule, never persisted.
type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Type  NotificationType  `json:"type"`
	Icon  string            `json:"icon,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// DeliveryOutcome records the result of one push attempt to one endpoint
// within a tick. Used for logging and the trigger response counts only.
type DeliveryOutcome struct {
	UserID         uint
	SubscriptionID uint
	Endpoint       string
	Succeeded      bool
	Error          string
}
