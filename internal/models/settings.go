package models

// Settings are the per-user notification and accessibility toggles.
// Each flag is independently toggleable and only persisted on an
// explicit save.
type Settings struct {
	EmailNotifications bool `json:"emailNotifications"`
	SMSAlerts          bool `json:"smsAlerts"`
	RideReminders      bool `json:"rideReminders"`
	DarkMode           bool `json:"darkMode"`
}

func DefaultSettings() *Settings {
	return &Settings{
		EmailNotifications: true,
		SMSAlerts:          false,
		RideReminders:      true,
		DarkMode:           false,
	}
}
