package booking

import (
	"context"
	"fmt"
	"strings"

	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/session"
	"mastoride/internal/store"
	"mastoride/internal/utils"
	"mastoride/pkg/logger"
)

// IncompleteDraftError reports which required fields are still empty
// when a fare estimate is requested.
type IncompleteDraftError struct {
	Missing []string
}

func (e *IncompleteDraftError) Error() string {
	return "ride draft incomplete: " + strings.Join(e.Missing, ", ")
}

// Service owns the in-progress ride draft and its fare estimation.
type Service struct {
	store    *store.Store
	notifier *notify.Notifier
	logger   *logger.Logger
}

func NewService(st *store.Store, notifier *notify.Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		notifier: notifier,
		logger:   log,
	}
}

func (s *Service) GetDraft(ctx context.Context, sess *session.Session) (*models.RideDraft, error) {
	return s.store.GetDraft(ctx, sess.UserID)
}

// UpdateDraft applies field changes to the draft and persists it.
// Persistence happens on every change, valid or not, so a reload never
// loses typed input.
func (s *Service) UpdateDraft(ctx context.Context, sess *session.Session, fields map[string]interface{}) (*models.RideDraft, error) {
	draft, err := s.store.GetDraft(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	for field, value := range fields {
		applyField(draft, field, value)
	}

	if err := s.store.SaveDraft(ctx, sess.UserID, draft); err != nil {
		return nil, fmt.Errorf("failed to persist ride draft: %w", err)
	}

	return draft, nil
}

func applyField(draft *models.RideDraft, field string, value interface{}) {
	switch field {
	case "pickup":
		draft.Pickup = asString(value)
	case "dropoff":
		draft.Dropoff = asString(value)
	case "date":
		draft.Date = asString(value)
	case "time":
		draft.Time = asString(value)
	case "passengers":
		draft.Passengers = utils.CoercePassengers(value)
	case "vehicleType":
		if vt := models.VehicleType(asString(value)); vt.Valid() {
			draft.VehicleType = vt
		}
	}
}

func asString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// ClearDraft resets the draft to its empty defaults, as happens when
// the confirmation modal is dismissed.
func (s *Service) ClearDraft(ctx context.Context, sess *session.Session) error {
	return s.store.SaveDraft(ctx, sess.UserID, models.NewRideDraft())
}

// EstimateFare computes a simulated fare for the current draft. The
// distance term is a random draw, not a routed value; the estimate is
// intentionally non-deterministic.
func (s *Service) EstimateFare(ctx context.Context, sess *session.Session) (*models.FareEstimate, error) {
	draft, err := s.store.GetDraft(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	if !draft.Complete() {
		s.notifier.Error(sess.UserID, "Please fill pickup, drop-off, date and time first.")
		return nil, &IncompleteDraftError{Missing: draft.MissingFields()}
	}

	estimate := Estimate(draft)

	s.notifier.Success(sess.UserID, "Fare estimated for your ride.")
	s.logger.WithUserID(sess.UserID).WithFields(map[string]interface{}{
		"fare":     estimate.Fare,
		"distance": estimate.Distance,
	}).Info("Fare estimated")

	return estimate, nil
}

// Estimate prices a complete draft: base fare plus a simulated
// distance at the per-mile rate, scaled by passengers and vehicle
// class.
func Estimate(draft *models.RideDraft) *models.FareEstimate {
	distance := utils.SecureRandomInt(utils.MaxDistanceMiles) + utils.MinDistanceMiles

	passengers := draft.Passengers
	if passengers < utils.MinPassengers {
		passengers = utils.DefaultPassengers
	}

	total := (utils.BaseFare + float64(distance)*utils.PerMileRate) *
		float64(passengers) * draft.VehicleType.FareMultiplier()

	return &models.FareEstimate{
		Fare:      utils.FormatFare(total),
		Distance:  distance,
		Estimated: true,
	}
}
