package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventlottery/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	waitlistController *controllers.WaitlistController,
	lotteryController *controllers.LotteryController,
	accountController *controllers.AccountController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", eventController.Create)
	mux.HandleFunc("GET /events/{eventID}", eventController.Get)
	mux.HandleFunc("PATCH /events/{eventID}", eventController.UpdateSettings)

	// Waitlist and list access
	mux.HandleFunc("POST /events/{eventID}/waitlist", waitlistController.Join)
	mux.HandleFunc("DELETE /events/{eventID}/waitlist/{email}", waitlistController.Leave)
	mux.HandleFunc("GET /events/{eventID}/lists/{listName}", waitlistController.List)

	// Lottery
	mux.HandleFunc("POST /events/{eventID}/lottery/draw", lotteryController.Draw)
	mux.HandleFunc("POST /events/{eventID}/lottery/resample", lotteryController.Resample)
	mux.HandleFunc("GET /events/{eventID}/lottery/availability", lotteryController.Availability)
	mux.HandleFunc("POST /events/{eventID}/invitation/response", lotteryController.Respond)

	// Accounts
	mux.HandleFunc("POST /accounts", accountController.Register)
	mux.HandleFunc("GET /accounts/{email}", accountController.Get)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
