package models

import "strings"

// CardDetails exists only for the duration of the payment step and is
// cleared as soon as the simulated charge settles.
type CardDetails struct {
	CardHolder string `json:"cardHolder"`
	CardNumber string `json:"cardNumber" validate:"required,card_number"`
	Expiry     string `json:"expiry" validate:"required,card_expiry"`
	CVV        string `json:"cvv" validate:"required,cvv"`
}

// NormalizedNumber strips display grouping spaces.
func (c *CardDetails) NormalizedNumber() string {
	return strings.ReplaceAll(c.CardNumber, " ", "")
}

// Clear zeroes every field in place.
func (c *CardDetails) Clear() {
	*c = CardDetails{}
}
