package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/domain"
	"eventlottery/internal/services"
)

type AccountController struct {
	Logger  *slog.Logger
	Service services.AccountService
}

func NewAccountController(logger *slog.Logger, svc services.AccountService) *AccountController {
	return &AccountController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterRequest is the request body for POST /accounts.
type RegisterRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (r *RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	if r.Role != "" && !domain.ValidRole(domain.Role(r.Role)) {
		errs = append(errs, "role must be one of entrant, organizer, admin")
	}
	return errs
}

// Register godoc
// @Summary Register an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body controllers.RegisterRequest true "Account details"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /accounts [post]
func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleEntrant
	}
	account, err := c.Service.Register(r.Context(), role, strings.TrimSpace(req.Name), req.Email, strings.TrimSpace(req.Phone), req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, account)
}

// Get godoc
// @Summary Fetch an account by email
// @Tags accounts
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /accounts/{email} [get]
func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing email")
		return
	}

	account, err := c.Service.GetByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, account)
}
