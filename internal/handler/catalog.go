package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/service"
)

const msgCatalogFailed = "Failed to load offers. Please try again."

// CatalogHandler serves the hotel, tour and transfer listings and price
// quotes.
type CatalogHandler struct {
	Catalog  *service.CatalogService
	Bookings *service.BookingService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, bookings *service.BookingService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Bookings: bookings}
}

// ListHotels handles GET /v1/hotels.
func (h *CatalogHandler) ListHotels(c echo.Context) error {
	items, err := h.Catalog.Hotels(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msgCatalogFailed})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListTours handles GET /v1/tours?category=.  Categories are always
// derived from the full list so the filter bar stays complete.
func (h *CatalogHandler) ListTours(c echo.Context) error {
	ctx := c.Request().Context()
	all, err := h.Catalog.Tours(ctx, "")
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msgCatalogFailed})
	}
	items := all
	category := c.QueryParam("category")
	if category != "" && category != service.AllCategories {
		if items, err = h.Catalog.Tours(ctx, category); err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": msgCatalogFailed})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"categories": service.TourCategories(all),
	})
}

// ListTransfers handles GET /v1/transfers; ?group=origin returns the
// routes grouped by departure point.
func (h *CatalogHandler) ListTransfers(c echo.Context) error {
	items, err := h.Catalog.TransferRoutes(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msgCatalogFailed})
	}
	if c.QueryParam("group") == "origin" {
		return c.JSON(http.StatusOK, echo.Map{"groups": service.GroupByOrigin(items)})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOffering handles GET /v1/{hotels|tours|transfers}/:id.
func (h *CatalogHandler) GetOffering(kind model.BookingType) echo.HandlerFunc {
	return func(c echo.Context) error {
		o, err := h.Catalog.Offering(c.Request().Context(), kind, c.Param("id"))
		if err != nil {
			return writeError(c, err, msgCatalogFailed)
		}
		return c.JSON(http.StatusOK, o)
	}
}

// Quote handles GET /v1/{hotels|tours|transfers}/:id/quote.  Hotels read
// check_in, check_out and guests; tours and transfers read people.
func (h *CatalogHandler) Quote(kind model.BookingType) echo.HandlerFunc {
	return func(c echo.Context) error {
		f := booking.NewForm()
		if kind == model.BookingHotel {
			f.CheckInDate = c.QueryParam("check_in")
			f.CheckOutDate = c.QueryParam("check_out")
		}
		count := c.QueryParam("people")
		if kind == model.BookingHotel {
			count = c.QueryParam("guests")
		}
		if count != "" {
			n, err := strconv.Atoi(count)
			if err != nil || n < 1 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid number of people"})
			}
			f.NumberOfPeople = n
		}

		req := booking.Request{Type: kind, ServiceID: c.Param("id"), Form: f}
		o, q, err := h.Bookings.Quote(c.Request().Context(), req)
		if err != nil {
			return writeError(c, err, msgCatalogFailed)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"service_id":   o.OfferingID(),
			"service_name": o.DisplayName(),
			"booking_type": o.Kind(),
			"quote":        q,
		})
	}
}
