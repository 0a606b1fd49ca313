package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/session"
	"mastoride/pkg/logger"
)

var errMissingFields = errors.New("booking is missing required fields")

// Synchronizer mirrors confirmed bookings to the upstream backend.
// The mirror is best effort: the rider's local history is already
// written by the time this runs, so every failure here is logged,
// surfaced as a single toast, and otherwise swallowed.
type Synchronizer struct {
	baseURL  string
	client   *http.Client
	notifier *notify.Notifier
	logger   *logger.Logger
}

func New(baseURL string, timeout time.Duration, notifier *notify.Notifier, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		notifier: notifier,
		logger:   log,
	}
}

// SyncAsync mirrors the booking in the background and never reports
// an error to the caller.
func (s *Synchronizer) SyncAsync(sess *session.Session, booking *models.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*s.client.Timeout)
		defer cancel()
		_ = s.Sync(ctx, sess, booking)
	}()
}

// Sync creates the booking upstream and immediately marks it
// completed with the confirmed fare. Exposed separately from
// SyncAsync so tests can run it synchronously.
func (s *Synchronizer) Sync(ctx context.Context, sess *session.Session, booking *models.Booking) error {
	if booking.Pickup == "" || booking.Dropoff == "" || booking.Date == "" || booking.Time == "" || sess.Email == "" {
		s.logger.WithUserID(sess.UserID).Warn("Skipping backend sync: booking missing required fields")
		return errMissingFields
	}

	createReq := models.BookingCreateRequest{
		StudentID:     sess.UserID,
		StudentEmail:  sess.Email,
		StudentName:   sess.Name,
		Pickup:        booking.Pickup,
		Dropoff:       booking.Dropoff,
		RideDate:      booking.Date,
		RideTime:      booking.Time,
		Passengers:    booking.Passengers,
		VehicleType:   booking.VehicleType,
		EstimatedFare: booking.Fare,
		PaymentMethod: "card",
	}

	remoteID, err := s.createBooking(ctx, &createReq)
	if err != nil {
		s.reportFailure(sess.UserID, "create", err)
		return err
	}

	updateReq := models.BookingUpdateRequest{
		Status:        models.BookingStatusCompleted,
		ActualFare:    booking.Fare,
		PaymentStatus: "paid",
	}
	if err := s.updateBooking(ctx, remoteID, &updateReq); err != nil {
		s.reportFailure(sess.UserID, "update", err)
		return err
	}

	s.logger.WithUserID(sess.UserID).WithBookingID(remoteID).Info("Booking mirrored to backend")
	return nil
}

// createBooking posts to the admin users endpoint, which the backend
// repurposes as booking-create, and returns the remote booking id.
func (s *Synchronizer) createBooking(ctx context.Context, req *models.BookingCreateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/admin/users", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("booking create returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Booking struct {
			ID string `json:"_id"`
		} `json:"booking"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode booking create response: %w", err)
	}
	if parsed.Booking.ID == "" {
		return "", errors.New("booking create response carried no id")
	}

	return parsed.Booking.ID, nil
}

func (s *Synchronizer) updateBooking(ctx context.Context, remoteID string, req *models.BookingUpdateRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/api/admin/users/"+remoteID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("booking update returned status %d", resp.StatusCode)
	}

	return nil
}

func (s *Synchronizer) reportFailure(userID, phase string, err error) {
	s.logger.WithUserID(userID).WithError(err).Errorf("Backend booking sync failed during %s", phase)
	s.notifier.Error(userID, "Your ride is confirmed, but we could not sync it to the server.")
}
