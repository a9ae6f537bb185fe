package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/domain"
)

type WaitlistController struct {
	Logger  *slog.Logger
	Service domain.WaitlistService
}

func NewWaitlistController(logger *slog.Logger, svc domain.WaitlistService) *WaitlistController {
	return &WaitlistController{
		Logger:  logger,
		Service: svc,
	}
}

// JoinRequest is the request body for POST /events/{eventID}/waitlist.
type JoinRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate implements helpers.Validator.
func (r *JoinRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// Join godoc
// @Summary Join an event's waitlist
// @Description Adds the entrant to the waitlist. Rejected if the entrant already appears on any of the event's lists.
// @Tags waitlist
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body controllers.JoinRequest true "Entrant details"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/waitlist [post]
func (c *WaitlistController) Join(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	var req JoinRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	entrant := domain.Entrant{
		Name:  strings.TrimSpace(req.Name),
		Email: domain.NormalizeEmail(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := c.Service.Join(r.Context(), eventID, entrant); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entrant)
}

// Leave godoc
// @Summary Leave an event's waitlist
// @Tags waitlist
// @Produce json
// @Param eventID path string true "Event ID"
// @Param email path string true "Entrant email"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/waitlist/{email} [delete]
func (c *WaitlistController) Leave(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	email := r.PathValue("email")
	if eventID == "" || email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or email")
		return
	}

	if err := c.Service.Leave(r.Context(), eventID, email); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"email": domain.NormalizeEmail(email)})
}

// ListSuccessResponse is the success response envelope for the list endpoint.
type ListSuccessResponse struct {
	Data  []domain.Entrant  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List the entrants on one of an event's lists
// @Tags waitlist
// @Produce json
// @Param eventID path string true "Event ID"
// @Param listName path string true "List name" Enums(waitlist, inviteList, acceptedList, declinedList)
// @Success 200 {object} controllers.ListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/lists/{listName} [get]
func (c *WaitlistController) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	listName := r.PathValue("listName")
	if eventID == "" || listName == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or listName")
		return
	}

	list, err := c.Service.List(r.Context(), eventID, domain.ListName(listName))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list.Entrants())
}
