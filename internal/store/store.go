package store

import (
	"context"
	"errors"

	"mastoride/internal/models"
)

// ErrNotFound is returned by KV.Get when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// KV is the flat key-value layer underneath the dashboard store.
// Writes are last-write-wins; there is no locking across sessions.
type KV interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Key names mirror the dashboard's persistence contract. Values are
// JSON documents keyed per user.
const (
	keyRideDraft       = "ud:ride_draft:"
	keyRideHistory     = "ud:ride_history:"
	keyActiveTab       = "ud:active_tab:"
	keyProfile         = "ud:profile:"
	keySettings        = "ud:settings:"
	keyBadgesAvailable = "ud:badges_available:"
	keyBadgesUsed      = "ud:badges_used:"
)

// Store persists per-user dashboard state.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) GetDraft(ctx context.Context, userID string) (*models.RideDraft, error) {
	var draft models.RideDraft
	err := s.kv.Get(ctx, keyRideDraft+userID, &draft)
	if errors.Is(err, ErrNotFound) {
		return models.NewRideDraft(), nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *Store) SaveDraft(ctx context.Context, userID string, draft *models.RideDraft) error {
	return s.kv.Set(ctx, keyRideDraft+userID, draft)
}

func (s *Store) GetHistory(ctx context.Context, userID string) ([]models.Booking, error) {
	var history []models.Booking
	err := s.kv.Get(ctx, keyRideHistory+userID, &history)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Store) SaveHistory(ctx context.Context, userID string, history []models.Booking) error {
	return s.kv.Set(ctx, keyRideHistory+userID, history)
}

func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.kv.Get(ctx, keyProfile+userID, &profile)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) SaveProfile(ctx context.Context, userID string, profile *models.Profile) error {
	return s.kv.Set(ctx, keyProfile+userID, profile)
}

func (s *Store) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	var settings models.Settings
	err := s.kv.Get(ctx, keySettings+userID, &settings)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, userID string, settings *models.Settings) error {
	return s.kv.Set(ctx, keySettings+userID, settings)
}

func (s *Store) GetUIState(ctx context.Context, userID string) (*models.UIState, error) {
	var state models.UIState
	err := s.kv.Get(ctx, keyActiveTab+userID, &state)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultUIState(), nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveUIState(ctx context.Context, userID string, state *models.UIState) error {
	return s.kv.Set(ctx, keyActiveTab+userID, state)
}

func (s *Store) GetAvailableBadges(ctx context.Context, userID string) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.kv.Get(ctx, keyBadgesAvailable+userID, &badges)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultBadges(), nil
	}
	if err != nil {
		return nil, err
	}
	return badges, nil
}

func (s *Store) SaveAvailableBadges(ctx context.Context, userID string, badges []models.Badge) error {
	return s.kv.Set(ctx, keyBadgesAvailable+userID, badges)
}

func (s *Store) GetUsedBadges(ctx context.Context, userID string) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.kv.Get(ctx, keyBadgesUsed+userID, &badges)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return badges, nil
}

func (s *Store) SaveUsedBadges(ctx context.Context, userID string, badges []models.Badge) error {
	return s.kv.Set(ctx, keyBadgesUsed+userID, badges)
}
