package models

type VehicleType string

const (
	VehicleTypeEconomy VehicleType = "economy"
	VehicleTypePremium VehicleType = "premium"
	VehicleTypeXL      VehicleType = "xl"
)

// FareMultiplier returns the per-class fare multiplier. Unknown values
// fall back to economy pricing.
func (v VehicleType) FareMultiplier() float64 {
	switch v {
	case VehicleTypePremium:
		return 1.5
	case VehicleTypeXL:
		return 1.8
	default:
		return 1.0
	}
}

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleTypeEconomy, VehicleTypePremium, VehicleTypeXL:
		return true
	}
	return false
}

// RideDraft is the in-progress booking form. It is persisted on every
// field change so it survives a reload, valid or not.
type RideDraft struct {
	Pickup      string      `json:"pickup"`
	Dropoff     string      `json:"dropoff"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Passengers  int         `json:"passengers"`
	VehicleType VehicleType `json:"vehicleType"`
}

func NewRideDraft() *RideDraft {
	return &RideDraft{
		Passengers:  1,
		VehicleType: VehicleTypeEconomy,
	}
}

// Complete reports whether every field required for a fare estimate is
// filled in.
func (d *RideDraft) Complete() bool {
	return d.Pickup != "" && d.Dropoff != "" && d.Date != "" && d.Time != ""
}

// MissingFields lists the required fields that are still empty.
func (d *RideDraft) MissingFields() []string {
	var missing []string
	if d.Pickup == "" {
		missing = append(missing, "pickup")
	}
	if d.Dropoff == "" {
		missing = append(missing, "dropoff")
	}
	if d.Date == "" {
		missing = append(missing, "date")
	}
	if d.Time == "" {
		missing = append(missing, "time")
	}
	return missing
}

// FareEstimate is derived on demand and never persisted.
type FareEstimate struct {
	Fare      string `json:"fare"` // two decimal places
	Distance  int    `json:"distance"`
	Estimated bool   `json:"estimated"`
}
