package models

// UIState is the persisted dashboard layout state: which tab is
// active and whether the sidebar is expanded.
type UIState struct {
	ActiveTab   string `json:"activeTab"`
	SidebarOpen bool   `json:"sidebarOpen"`
}

func DefaultUIState() *UIState {
	return &UIState{ActiveTab: "profile", SidebarOpen: true}
}
