package payment

import (
	"context"
	"time"

	"mastoride/internal/models"
	"mastoride/internal/validators"
	"mastoride/pkg/logger"
)

// State tracks a payment attempt through the simulated gateway.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateProcessing State = "processing"
	StateSettled    State = "settled"
)

// CardValidationError carries the per-field messages for a rejected
// card form.
type CardValidationError struct {
	Fields map[string]string
}

func (e *CardValidationError) Error() string {
	return "card details failed validation"
}

// Receipt is the outcome of a settled charge. The simulator never
// declines a card that passes validation.
type Receipt struct {
	Amount    string    `json:"amount"`
	CardLast4 string    `json:"cardLast4"`
	SettledAt time.Time `json:"settledAt"`
}

// Simulator stands in for a real payment gateway. It validates the
// card synchronously, waits out a configurable processing delay, then
// settles unconditionally.
type Simulator struct {
	delay  time.Duration
	logger *logger.Logger
}

func NewSimulator(delay time.Duration, log *logger.Logger) *Simulator {
	return &Simulator{
		delay:  delay,
		logger: log,
	}
}

// Charge runs a card through the simulated gateway. Card details are
// zeroed after settlement so they never outlive the attempt. The
// context cancels a charge stuck in the processing wait.
func (s *Simulator) Charge(ctx context.Context, userID string, card *models.CardDetails, amount string) (*Receipt, error) {
	state := StateValidating
	s.logEvent(userID, state, amount)

	if fields := validators.CardErrors(card.CardHolder, card.CardNumber, card.Expiry, card.CVV); len(fields) > 0 {
		return nil, &CardValidationError{Fields: fields}
	}

	state = StateProcessing
	s.logEvent(userID, state, amount)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	receipt := &Receipt{
		Amount:    amount,
		CardLast4: lastFour(card.NormalizedNumber()),
		SettledAt: time.Now(),
	}
	card.Clear()

	state = StateSettled
	s.logEvent(userID, state, amount)

	return receipt, nil
}

func (s *Simulator) logEvent(userID string, state State, amount string) {
	if s.logger != nil {
		s.logger.LogPaymentEvent(userID, string(state), amount, "USD")
	}
}

func lastFour(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}
