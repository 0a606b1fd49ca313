package history

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/session"
	"mastoride/internal/store"
	"mastoride/internal/utils"
	"mastoride/pkg/logger"
)

// ListOptions narrow and order the history projection. Filtering and
// sorting never touch the stored list.
type ListOptions struct {
	Period string // all, month, year
	Status string // empty means any
	Sort   string // recent, price-high, price-low
}

// Service owns the rider's booking history and badge collections.
type Service struct {
	store    *store.Store
	notifier *notify.Notifier
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(st *store.Store, notifier *notify.Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// RecordCompletedRide prepends a completed booking to the history and
// grants the first-ride badge when this is the rider's first one. It
// is the only writer of history entries.
func (s *Service) RecordCompletedRide(ctx context.Context, sess *session.Session, draft *models.RideDraft, fare string) (*models.Booking, error) {
	history, err := s.store.GetHistory(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		ID:          uuid.NewString(),
		Pickup:      draft.Pickup,
		Dropoff:     draft.Dropoff,
		Date:        draft.Date,
		Time:        draft.Time,
		Passengers:  draft.Passengers,
		VehicleType: draft.VehicleType,
		Fare:        fare,
		Status:      models.BookingStatusCompleted,
		CreatedAt:   s.now(),
	}

	history = append([]models.Booking{booking}, history...)
	if err := s.store.SaveHistory(ctx, sess.UserID, history); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, "completed", map[string]interface{}{
		"user_id": sess.UserID,
		"fare":    fare,
	})

	if len(history) == 1 {
		if err := s.GrantBadge(ctx, sess, models.BadgeFirstRide); err != nil {
			s.logger.WithUserID(sess.UserID).WithError(err).Warn("Failed to grant first-ride badge")
		}
	}

	return &booking, nil
}

// List returns a filtered, sorted view of the history.
func (s *Service) List(ctx context.Context, sess *session.Session, opts ListOptions) ([]models.Booking, error) {
	history, err := s.store.GetHistory(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Booking, 0, len(history))
	for _, b := range history {
		if opts.Status != "" && string(b.Status) != opts.Status {
			continue
		}
		if !s.inPeriod(b, opts.Period) {
			continue
		}
		filtered = append(filtered, b)
	}

	switch opts.Sort {
	case utils.SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return utils.ParseFare(filtered[i].Fare) > utils.ParseFare(filtered[j].Fare)
		})
	case utils.SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return utils.ParseFare(filtered[i].Fare) < utils.ParseFare(filtered[j].Fare)
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered, nil
}

// inPeriod matches a booking's ride date against the filter window.
// Undated or malformed entries only show up under "all".
func (s *Service) inPeriod(b models.Booking, period string) bool {
	if period == "" || period == utils.PeriodAll {
		return true
	}

	rideDate, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return false
	}

	now := s.now()
	switch period {
	case utils.PeriodMonth:
		return rideDate.Year() == now.Year() && rideDate.Month() == now.Month()
	case utils.PeriodYear:
		return rideDate.Year() == now.Year()
	}
	return true
}

// TotalSpent sums the fares of every completed booking.
func (s *Service) TotalSpent(ctx context.Context, sess *session.Session) (string, error) {
	history, err := s.store.GetHistory(ctx, sess.UserID)
	if err != nil {
		return "", err
	}

	var total float64
	for _, b := range history {
		if b.Status == models.BookingStatusCompleted {
			total += utils.ParseFare(b.Fare)
		}
	}
	return utils.FormatFare(total), nil
}

// Badges returns the available and used collections.
func (s *Service) Badges(ctx context.Context, sess *session.Session) (available, used []models.Badge, err error) {
	available, err = s.store.GetAvailableBadges(ctx, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	used, err = s.store.GetUsedBadges(ctx, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	return available, used, nil
}

// GrantBadge marks an available badge as earned. Granting a badge
// that is unknown or already earned is a no-op.
func (s *Service) GrantBadge(ctx context.Context, sess *session.Session, badgeID string) error {
	available, err := s.store.GetAvailableBadges(ctx, sess.UserID)
	if err != nil {
		return err
	}

	for i := range available {
		if available[i].ID != badgeID || available[i].Earned {
			continue
		}
		available[i].Earned = true
		if err := s.store.SaveAvailableBadges(ctx, sess.UserID, available); err != nil {
			return err
		}
		s.notifier.Success(sess.UserID, "Badge earned: "+available[i].Title)
		return nil
	}

	return nil
}

// UseBadge moves an earned badge from available to used. Unknown,
// unearned, or already-used badges are left alone.
func (s *Service) UseBadge(ctx context.Context, sess *session.Session, badgeID string) error {
	available, err := s.store.GetAvailableBadges(ctx, sess.UserID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range available {
		if available[i].ID == badgeID && available[i].Earned {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	used, err := s.store.GetUsedBadges(ctx, sess.UserID)
	if err != nil {
		return err
	}

	badge := available[idx]
	available = append(available[:idx], available[idx+1:]...)
	used = append(used, badge)

	if err := s.store.SaveAvailableBadges(ctx, sess.UserID, available); err != nil {
		return err
	}
	if err := s.store.SaveUsedBadges(ctx, sess.UserID, used); err != nil {
		return err
	}

	s.notifier.Info(sess.UserID, "Badge redeemed: "+badge.Title)
	return nil
}
