package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/middleware"
	"github.com/afriride/travel-booking/internal/service"
)

// ReservationHandler serves the "my reservations" lookup.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(r *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: r}
}

// List handles GET /v1/reservations?email=.  With a lookup token in
// context the query may omit the email, and may not name another one.
func (h *ReservationHandler) List(c echo.Context) error {
	email := service.NormalizeEmail(c.QueryParam("email"))
	if tokenEmail, ok := c.Get(middleware.LookupEmailKey).(string); ok {
		if email == "" {
			email = tokenEmail
		} else if email != tokenEmail {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "token does not match email"})
		}
	}

	items, err := h.Reservations.Lookup(c.Request().Context(), email)
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	case err != nil:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": booking.MsgLookupFailed})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"email": email,
		"items": items,
		"count": len(items),
		"empty": len(items) == 0,
	})
}
