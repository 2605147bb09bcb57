package router

import (
	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/handler"
	"github.com/afriride/travel-booking/internal/middleware"
	"github.com/afriride/travel-booking/internal/model"
)

// RegisterBookings registers the write endpoints: one booking route per
// variant and the contact form.  All of them are rate limited and guarded
// against duplicate submission.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, ct *handler.ContactHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	for _, kind := range model.BookingTypes {
		g.POST("/bookings/"+string(kind), b.Create(kind))
	}
	g.POST("/contact", ct.Create)
	e.GET("/v1/contact/subjects", ct.Subjects)
}

// RegisterReservations registers the reservation lookup behind the
// lookup token check.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, tokenSecret string, requireToken bool, mws ...echo.MiddlewareFunc) {
	mws = append(mws, middleware.LookupAuth(tokenSecret, requireToken))
	e.GET("/v1/reservations", h.List, mws...)
}
