package models

// Badge is a gamification token. It sits in the "available" collection
// until the rider spends it, at which point it moves to "used".
type Badge struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

const BadgeFirstRide = "first-ride"

// DefaultBadges is the set granted to every rider on first dashboard
// visit. Only "welcome" starts out earned.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: "welcome", Icon: "🏅", Title: "Welcome Rider", Description: "Joined MastoRide", Earned: true},
		{ID: BadgeFirstRide, Icon: "🚗", Title: "First Ride", Description: "Complete your first booking", Earned: false},
		{ID: "early-bird", Icon: "🌅", Title: "Early Bird", Description: "Book a ride before 8am", Earned: false},
		{ID: "night-owl", Icon: "🦉", Title: "Night Owl", Description: "Book a ride after 10pm", Earned: false},
	}
}
