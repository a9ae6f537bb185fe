package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/domain"
)

type LotteryController struct {
	Logger  *slog.Logger
	Service domain.LotteryService
}

func NewLotteryController(logger *slog.Logger, svc domain.LotteryService) *LotteryController {
	return &LotteryController{
		Logger:  logger,
		Service: svc,
	}
}

// DrawSuccessResponse is the success response envelope for the draw and resample endpoints.
type DrawSuccessResponse struct {
	Data  *domain.DrawResult `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Draw godoc
// @Summary Run the lottery draw for an event
// @Description Randomly selects eligible waitlisted entrants to fill the event's open slots, moves them to the invite list, and notifies them. Selecting zero entrants (no slots, no eligible entrants) is a successful outcome.
// @Tags lottery
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.DrawSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: not_available"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/lottery/draw [post]
func (c *LotteryController) Draw(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	result, err := c.Service.DrawLottery(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Resample godoc
// @Summary Re-sample the lottery for an event
// @Description Expires all pending invitations, returns those entrants to the waitlist, and redraws for every unconfirmed seat.
// @Tags lottery
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.DrawSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/lottery/resample [post]
func (c *LotteryController) Resample(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	result, err := c.Service.ResampleLottery(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// AvailabilitySuccessResponse is the success response envelope for the availability endpoint.
type AvailabilitySuccessResponse struct {
	Data  *domain.LotteryAvailability `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// Availability godoc
// @Summary Check whether the lottery can run for an event
// @Tags lottery
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.AvailabilitySuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/lottery/availability [get]
func (c *LotteryController) Availability(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	availability, err := c.Service.CheckAvailability(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// RespondRequest is the request body for POST /events/{eventID}/invitation/response.
type RespondRequest struct {
	Email    string `json:"email"`
	Accepted *bool  `json:"accepted"`
}

// Validate implements helpers.Validator.
func (r *RespondRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Accepted == nil {
		errs = append(errs, "accepted is required")
	}
	return errs
}

// RespondSuccessResponse is the success response envelope for the invitation response endpoint.
type RespondSuccessResponse struct {
	Data  *domain.ResponseResult `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// Respond godoc
// @Summary Accept or decline a pending invitation
// @Description Records the entrant's response. Accepting re-checks the capacity bound; declining may trigger a single-slot backfill draw.
// @Tags lottery
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body controllers.RespondRequest true "Entrant email and decision"
// @Success 200 {object} controllers.RespondSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: not_invited or capacity_exceeded"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitation/response [post]
func (c *LotteryController) Respond(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.Respond(r.Context(), eventID, req.Email, *req.Accepted)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
