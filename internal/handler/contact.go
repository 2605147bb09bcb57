package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/service"
)

// ContactConfirmationDisplay is how long clients show the thank-you note.
const ContactConfirmationDisplay = 5 * time.Second

const msgInquiryReceived = "Thank you for your message! We will get back to you soon."

// ContactHandler accepts contact form messages.
type ContactHandler struct {
	Contact *service.ContactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(s *service.ContactService) *ContactHandler {
	return &ContactHandler{Contact: s}
}

// Subjects handles GET /v1/contact/subjects.
func (h *ContactHandler) Subjects(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": model.ContactSubjects})
}

// Create handles POST /v1/contact.
func (h *ContactHandler) Create(c echo.Context) error {
	var in model.ContactInquiry
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	stored, err := h.Contact.Submit(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err, booking.MsgInquiryFailed)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"inquiry":              stored,
		"message":              msgInquiryReceived,
		"confirmation_seconds": int(ContactConfirmationDisplay / time.Second),
	})
}
