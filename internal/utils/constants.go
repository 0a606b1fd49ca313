package utils

import "time"

// Application Constants
const (
	AppName    = "MastoRide"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour
	PasswordMinLength = 8
	PasswordMaxLength = 128

	// Fare model. Distance is a simulated draw, not a routed value.
	BaseFare         = 3.50
	PerMileRate      = 1.75
	MinDistanceMiles = 1
	MaxDistanceMiles = 10

	// Booking
	MinPassengers     = 1
	MaxPassengers     = 4
	DefaultPassengers = 1
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrBookingNotFound    = "booking not found"
	ErrProxyUpstream      = "Proxy error contacting backend"
)

// Dashboard tabs
const (
	TabProfile = "profile"
	TabBook    = "book"
	TabPayment = "payment"
	TabRewards = "rewards"
	TabHistory = "history"
)

// History projections
const (
	PeriodAll   = "all"
	PeriodMonth = "month"
	PeriodYear  = "year"

	SortRecent    = "recent"
	SortPriceHigh = "price-high"
	SortPriceLow  = "price-low"
)
