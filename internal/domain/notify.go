package domain

// NotificationLevel is the severity of a user-visible notification.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is a user-visible toast.
// swagger:model Notification
type Notification struct {
	Level       NotificationLevel `json:"level"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
}

// Notifier surfaces notifications to the user of one client.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// Navigator redirects the user of one client to a route.
type Navigator interface {
	Navigate(route string)
}
