package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/service"
	"github.com/afriride/travel-booking/internal/utils"
)

const msgBookingConfirmed = "Booking confirmed! We will contact you shortly."

// BookingHandler accepts booking submissions.  When TokenSecret is set,
// successful responses carry a lookup token for the customer's email.
type BookingHandler struct {
	Bookings    *service.BookingService
	TokenSecret string
	TokenTTL    time.Duration
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService, tokenSecret string, tokenTTL time.Duration) *BookingHandler {
	return &BookingHandler{Bookings: bookings, TokenSecret: tokenSecret, TokenTTL: tokenTTL}
}

type bookingBody struct {
	ServiceID string `json:"service_id"`
	booking.Form
}

// Create handles POST /v1/bookings/{hotel|tour|transfer}.  The price is
// computed from the stored offering; any client-side total is ignored.
func (h *BookingHandler) Create(kind model.BookingType) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body bookingBody
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		req := booking.Request{Type: kind, ServiceID: body.ServiceID, Form: body.Form}

		b, err := h.Bookings.Submit(c.Request().Context(), req)
		if err != nil {
			return writeError(c, err, booking.MsgBookingFailed)
		}

		resp := echo.Map{
			"booking":              b,
			"message":              msgBookingConfirmed,
			"confirmation_seconds": int(booking.ConfirmationDisplay / time.Second),
		}
		if h.TokenSecret != "" {
			tok, err := utils.NewLookupToken(h.TokenSecret, b.CustomerEmail, h.TokenTTL)
			if err != nil {
				log.Printf("booking: sign lookup token: %v", err)
			} else {
				resp["lookup_token"] = tok
			}
		}
		return c.JSON(http.StatusCreated, resp)
	}
}
