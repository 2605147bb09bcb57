package router

import (
	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/handler"
	"github.com/afriride/travel-booking/internal/model"
)

// RegisterCatalog registers the listing, detail and quote endpoints.
// cache wraps the listings only; quotes depend on query input and are
// cheap to recompute.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")

	g.GET("/hotels", h.ListHotels, cache)
	g.GET("/tours", h.ListTours, cache)
	g.GET("/transfers", h.ListTransfers, cache)

	g.GET("/hotels/:id", h.GetOffering(model.BookingHotel), cache)
	g.GET("/tours/:id", h.GetOffering(model.BookingTour), cache)
	g.GET("/transfers/:id", h.GetOffering(model.BookingTransfer), cache)

	g.GET("/hotels/:id/quote", h.Quote(model.BookingHotel))
	g.GET("/tours/:id/quote", h.Quote(model.BookingTour))
	g.GET("/transfers/:id/quote", h.Quote(model.BookingTransfer))
}
