package bot

import (
	"fmt"
	"strings"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/pricing"
	"github.com/afriride/travel-booking/internal/service"
)

const helpText = `AfriRide Albania booking bot

/hotels – list hotels
/tours [category] – list tours
/transfers – list airport and city transfers
/book <hotel|tour|transfer> <id> – start a booking
/reservations <email> – show your bookings
/cancel – discard the current booking form`

func formatHotel(h model.Hotel) string {
	return fmt.Sprintf("%s (%s) ★%.1f\n%s per night · %d rooms\nID: %s",
		h.Name, h.Location, h.Rating, pricing.Format(h.PricePerNight), h.AvailableRooms, h.ID)
}

func formatTour(t model.Tour) string {
	return fmt.Sprintf("%s [%s]\n%s · %s per person · up to %d\nID: %s",
		t.Title, t.Category, t.Duration, pricing.Format(t.Price), t.MaxParticipants, t.ID)
}

func formatRoute(r model.TransferRoute) string {
	return fmt.Sprintf("%s\n%s per person · %s, %d seats · %d min\nID: %s",
		r.DisplayName(), pricing.Format(r.Price), r.VehicleType, r.Seats, r.DurationMinutes, r.ID)
}

func formatGroups(groups []service.TransferGroup) string {
	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "From %s:\n", g.Origin)
		for _, r := range g.Routes {
			fmt.Fprintf(&sb, "  → %s  %s  (/book transfer %s)\n", r.ToLocation, pricing.Format(r.Price), r.ID)
		}
	}
	return sb.String()
}

func formatReservations(email string, items []service.Reservation) string {
	if len(items) == 0 {
		return fmt.Sprintf("No reservations found for %s.", email)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Reservations for %s:\n", email)
	for _, r := range items {
		fmt.Fprintf(&sb, "\n%s · %s\nDate: %s · People: %d · Total: %s\nRef: %s\n",
			r.TypeInfo.Label, r.StatusInfo.Label, r.BookingDate, r.NumberOfPeople,
			pricing.Format(r.TotalPrice), r.ID)
		if r.SpecialRequests != "" {
			fmt.Fprintf(&sb, "Notes: %s\n", r.SpecialRequests)
		}
	}
	return sb.String()
}

func formatReview(o model.Offering, f booking.Form, q pricing.Quote) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Please confirm your %s booking:\n\n%s\n", o.Kind().Info().Label, o.DisplayName())
	fmt.Fprintf(&sb, "Name: %s\nEmail: %s\nPhone: %s\n", f.CustomerName, f.CustomerEmail, f.CustomerPhone)
	if o.Kind() == model.BookingHotel {
		fmt.Fprintf(&sb, "Check-in: %s\nCheck-out: %s\nGuests: %d\n", f.CheckInDate, f.CheckOutDate, f.NumberOfPeople)
	} else {
		fmt.Fprintf(&sb, "Date: %s\nPeople: %d\n", f.BookingDate, f.NumberOfPeople)
	}
	if f.SpecialRequests != "" {
		fmt.Fprintf(&sb, "Requests: %s\n", f.SpecialRequests)
	}
	if q.ShowSummary {
		if q.Nights > 0 {
			fmt.Fprintf(&sb, "\n%d night(s) × %s = %s", q.Nights, pricing.Format(q.UnitPrice), q.Display)
		} else {
			fmt.Fprintf(&sb, "\n%d × %s = %s", q.Quantity, pricing.Format(q.UnitPrice), q.Display)
		}
	}
	return sb.String()
}
