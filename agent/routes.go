package agent

import "github.com/zeeshansheikh0001/calorie-tracker-sub001/models"

// routeTable maps every known notification type to the in-app path a
// click opens. Unknown types fall back to the app root.
var routeTable = map[models.NotificationType]string{
	models.NotificationMealReminder:    "/log-food/manual",
	models.NotificationWaterReminder:   "/log-food/manual?type=water",
	models.NotificationWeighInReminder: "/progress",
	models.NotificationConfirmation:    "/reminders",
	models.NotificationGeneral:         "/",
}

// DefaultRoute is where clicks on unrecognized notification types land.
const DefaultRoute = "/"

func RouteFor(t models.NotificationType) string {
	if path, ok := routeTable[t]; ok {
		return path
	}
	return DefaultRoute
}
