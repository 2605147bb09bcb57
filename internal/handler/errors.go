// Package handler exposes the booking site over HTTP: catalog browsing
// and quotes, booking submission, reservation lookup and the contact
// form.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/booking"
)

// writeError maps service errors onto the small set of responses the site
// distinguishes.  Anything unclassified becomes 502 with the generic
// message for the operation; the cause has already been logged.
func writeError(c echo.Context, err error, generic string) error {
	var ve *booking.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, booking.ErrOfferingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": booking.UserMessage(err)})
	case errors.Is(err, booking.ErrSubmitInFlight):
		return c.JSON(http.StatusConflict, echo.Map{"error": booking.UserMessage(err)})
	default:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": generic})
	}
}
