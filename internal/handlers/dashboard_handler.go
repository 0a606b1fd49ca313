package handlers

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"mastoride/internal/booking"
	"mastoride/internal/geocode"
	"mastoride/internal/history"
	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/payment"
	"mastoride/internal/services"
	"mastoride/internal/session"
	"mastoride/internal/store"
	"mastoride/internal/utils"
	"mastoride/internal/validators"
	"mastoride/pkg/logger"
)

// DashboardHandler serves the rider dashboard: profile, settings, UI
// state, the booking workflow, history, badges, and the geocode
// preview. Everything is keyed by the session user.
type DashboardHandler struct {
	store     *store.Store
	booking   *booking.Service
	dashboard services.DashboardService
	history   *history.Service
	notifier  *notify.Notifier
	geocoder  geocode.Provider
	debounce  time.Duration
	logger    *logger.Logger

	mu       sync.Mutex
	previews map[string]*geocode.Preview
}

func NewDashboardHandler(
	st *store.Store,
	bookingSvc *booking.Service,
	dashboardSvc services.DashboardService,
	historySvc *history.Service,
	notifier *notify.Notifier,
	geocoder geocode.Provider,
	debounce time.Duration,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		store:     st,
		booking:   bookingSvc,
		dashboard: dashboardSvc,
		history:   historySvc,
		notifier:  notifier,
		geocoder:  geocoder,
		debounce:  debounce,
		logger:    log,
		previews:  make(map[string]*geocode.Preview),
	}
}

func (h *DashboardHandler) mustSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := session.FromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return nil, false
	}
	return sess, true
}

// GetProfile handles GET /api/dashboard/profile. A user with no saved
// profile gets role-appropriate defaults.
func (h *DashboardHandler) GetProfile(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	profile, err := h.store.GetProfile(c.Request.Context(), sess.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load profile")
		utils.InternalServerErrorResponse(c)
		return
	}
	if profile == nil {
		if sess.IsAdmin() {
			profile = models.NewAdminProfile(sess.Name, sess.Email)
		} else {
			profile = models.NewStudentProfile(sess.Name, sess.Email)
		}
	}

	utils.SuccessResponse(c, "", profile)
}

// SaveProfile handles PUT /api/dashboard/profile
func (h *DashboardHandler) SaveProfile(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	base := profile.Base()
	if base == nil {
		utils.BadRequestResponse(c, "Profile must carry a student or admin variant")
		return
	}
	if base.Email != "" && !validators.IsValidEmail(base.Email) {
		utils.ValidationErrorResponse(c, map[string]string{"email": "Enter a valid email."})
		return
	}

	if err := h.store.SaveProfile(c.Request.Context(), sess.UserID, &profile); err != nil {
		h.logger.WithError(err).Error("Failed to save profile")
		utils.InternalServerErrorResponse(c)
		return
	}

	h.notifier.Success(sess.UserID, "Profile saved.")
	utils.SuccessResponse(c, "Profile saved", profile)
}

// GetSettings handles GET /api/dashboard/settings
func (h *DashboardHandler) GetSettings(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	settings, err := h.store.GetSettings(c.Request.Context(), sess.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load settings")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", settings)
}

// SaveSettings handles PUT /api/dashboard/settings
func (h *DashboardHandler) SaveSettings(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := h.store.SaveSettings(c.Request.Context(), sess.UserID, &settings); err != nil {
		h.logger.WithError(err).Error("Failed to save settings")
		utils.InternalServerErrorResponse(c)
		return
	}

	h.notifier.Success(sess.UserID, "Settings saved.")
	utils.SuccessResponse(c, "Settings saved", settings)
}

// GetUIState handles GET /api/dashboard/ui
func (h *DashboardHandler) GetUIState(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	state, err := h.store.GetUIState(c.Request.Context(), sess.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load UI state")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", state)
}

// SaveUIState handles PUT /api/dashboard/ui
func (h *DashboardHandler) SaveUIState(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var state models.UIState
	if err := c.ShouldBindJSON(&state); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := h.store.SaveUIState(c.Request.Context(), sess.UserID, &state); err != nil {
		h.logger.WithError(err).Error("Failed to save UI state")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", state)
}

// GetDraft handles GET /api/dashboard/draft
func (h *DashboardHandler) GetDraft(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	draft, err := h.booking.GetDraft(c.Request.Context(), sess)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load draft")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", draft)
}

// PatchDraft handles PATCH /api/dashboard/draft. The body is a sparse
// field map; every change persists, valid or not.
func (h *DashboardHandler) PatchDraft(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	draft, err := h.booking.UpdateDraft(c.Request.Context(), sess, fields)
	if err != nil {
		h.logger.WithError(err).Error("Failed to update draft")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", draft)
}

// EstimateFare handles POST /api/dashboard/estimate. On success the
// response carries the tab the UI should move to.
func (h *DashboardHandler) EstimateFare(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	estimate, err := h.booking.EstimateFare(c.Request.Context(), sess)
	if err != nil {
		var incomplete *booking.IncompleteDraftError
		if errors.As(err, &incomplete) {
			details := make(map[string]string, len(incomplete.Missing))
			for _, field := range incomplete.Missing {
				details[field] = "Required"
			}
			utils.ValidationErrorResponse(c, details)
			return
		}
		h.logger.WithError(err).Error("Failed to estimate fare")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", gin.H{
		"estimate": estimate,
		"nextTab":  utils.TabPayment,
	})
}

type payRequest struct {
	Card models.CardDetails `json:"card"`
	Fare string             `json:"fare"`
}

// Pay handles POST /api/dashboard/pay
func (h *DashboardHandler) Pay(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if req.Fare == "" {
		utils.BadRequestResponse(c, "Estimate a fare before paying")
		return
	}

	entry, err := h.dashboard.ConfirmPayment(c.Request.Context(), sess, &req.Card, req.Fare)
	if err != nil {
		var verr *payment.CardValidationError
		var incomplete *booking.IncompleteDraftError
		switch {
		case errors.As(err, &verr):
			utils.ValidationErrorResponse(c, verr.Fields)
		case errors.As(err, &incomplete):
			utils.BadRequestResponse(c, incomplete.Error())
		default:
			h.logger.WithError(err).Error("Payment failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Payment confirmed", gin.H{
		"booking":          entry,
		"paymentConfirmed": true,
	})
}

// ListHistory handles GET /api/dashboard/history
func (h *DashboardHandler) ListHistory(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	opts := history.ListOptions{
		Period: c.DefaultQuery("period", utils.PeriodAll),
		Status: c.Query("status"),
		Sort:   c.DefaultQuery("sort", utils.SortRecent),
	}

	entries, err := h.history.List(c.Request.Context(), sess, opts)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history")
		utils.InternalServerErrorResponse(c)
		return
	}

	total, err := h.history.TotalSpent(c.Request.Context(), sess)
	if err != nil {
		h.logger.WithError(err).Error("Failed to total history")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", gin.H{
		"rides":      entries,
		"totalSpent": total,
	})
}

// ListBadges handles GET /api/dashboard/badges
func (h *DashboardHandler) ListBadges(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	available, used, err := h.history.Badges(c.Request.Context(), sess)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load badges")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", gin.H{
		"available": available,
		"used":      used,
	})
}

// UseBadge handles POST /api/dashboard/badges/:id/use
func (h *DashboardHandler) UseBadge(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	if err := h.history.UseBadge(c.Request.Context(), sess, c.Param("id")); err != nil {
		h.logger.WithError(err).Error("Failed to use badge")
		utils.InternalServerErrorResponse(c)
		return
	}

	available, used, err := h.history.Badges(c.Request.Context(), sess)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load badges")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", gin.H{
		"available": available,
		"used":      used,
	})
}

// ListToasts handles GET /api/dashboard/toasts, draining the recent
// buffer for clients without a websocket connection.
func (h *DashboardHandler) ListToasts(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	toasts := h.notifier.Recent(sess.UserID)
	if toasts == nil {
		toasts = []notify.Toast{}
	}
	utils.SuccessResponse(c, "", gin.H{"toasts": toasts})
}

type previewRequest struct {
	Pickup  *string `json:"pickup"`
	Dropoff *string `json:"dropoff"`
}

// UpdatePreview handles POST /api/dashboard/preview. Each field update
// feeds the per-user debounced preview widget.
func (h *DashboardHandler) UpdatePreview(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	preview := h.previewFor(sess.UserID)
	if req.Pickup != nil {
		preview.SetPickup(*req.Pickup)
	}
	if req.Dropoff != nil {
		preview.SetDropoff(*req.Dropoff)
	}

	utils.SuccessResponse(c, "", preview.Snapshot())
}

// GetPreview handles GET /api/dashboard/preview
func (h *DashboardHandler) GetPreview(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, "", h.previewFor(sess.UserID).Snapshot())
}

func (h *DashboardHandler) previewFor(userID string) *geocode.Preview {
	h.mu.Lock()
	defer h.mu.Unlock()

	preview, ok := h.previews[userID]
	if !ok {
		preview = geocode.NewPreview(h.geocoder, h.debounce)
		h.previews[userID] = preview
	}
	return preview
}

// Close shuts down every live preview widget.
func (h *DashboardHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, preview := range h.previews {
		preview.Close()
	}
	h.previews = make(map[string]*geocode.Preview)
}
