package services

import (
	"context"

	"mastoride/internal/booking"
	"mastoride/internal/history"
	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/payment"
	"mastoride/internal/session"
	"mastoride/internal/store"
	"mastoride/internal/syncer"
	"mastoride/pkg/logger"
)

// DashboardService ties the booking workflow together: draft, fare,
// simulated charge, local history, and the best-effort backend mirror.
type DashboardService interface {
	ConfirmPayment(ctx context.Context, sess *session.Session, card *models.CardDetails, fare string) (*models.Booking, error)
}

type dashboardService struct {
	store     *store.Store
	booking   *booking.Service
	payment   *payment.Simulator
	history   *history.Service
	syncer    *syncer.Synchronizer
	notifier  *notify.Notifier
	logger    *logger.Logger
	syncAsync bool
}

func NewDashboardService(
	st *store.Store,
	bookingSvc *booking.Service,
	simulator *payment.Simulator,
	historySvc *history.Service,
	sync *syncer.Synchronizer,
	notifier *notify.Notifier,
	log *logger.Logger,
) DashboardService {
	return &dashboardService{
		store:     st,
		booking:   bookingSvc,
		payment:   simulator,
		history:   historySvc,
		syncer:    sync,
		notifier:  notifier,
		logger:    log,
		syncAsync: true,
	}
}

// ConfirmPayment runs the settlement pipeline. The local history entry
// is written before the backend mirror is even attempted, so a remote
// failure never costs the rider their confirmation.
func (s *dashboardService) ConfirmPayment(ctx context.Context, sess *session.Session, card *models.CardDetails, fare string) (*models.Booking, error) {
	draft, err := s.store.GetDraft(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if !draft.Complete() {
		return nil, &booking.IncompleteDraftError{Missing: draft.MissingFields()}
	}

	receipt, err := s.payment.Charge(ctx, sess.UserID, card, fare)
	if err != nil {
		return nil, err
	}

	entry, err := s.history.RecordCompletedRide(ctx, sess, draft, receipt.Amount)
	if err != nil {
		return nil, err
	}

	if s.syncAsync {
		s.syncer.SyncAsync(sess, entry)
	} else {
		_ = s.syncer.Sync(ctx, sess, entry)
	}

	if err := s.booking.ClearDraft(ctx, sess); err != nil {
		s.logger.WithUserID(sess.UserID).WithError(err).Warn("Failed to clear draft after settlement")
	}

	s.notifier.Success(sess.UserID, "Payment confirmed. Your ride is booked!")
	return entry, nil
}
