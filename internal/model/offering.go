package model

import "time"

// Offering is the common view over the bookable catalog variants.  The
// booking flow only needs an identifier, the variant tag, the unit price
// and the capacity constraint, so hotels, tours and transfer routes all
// satisfy it.
type Offering interface {
	OfferingID() string
	Kind() BookingType
	UnitPrice() float64
	Capacity() int
	DisplayName() string
}

// Hotel is a hotel offering priced per night.
//
// Fields:
//
//	PricePerNight  – unit price in euros for one night.
//	Rating         – average guest rating, used to order the catalog.
//	Amenities      – free-form amenity labels (WiFi, Pool, ...).
//	AvailableRooms – capacity constraint for a booking.
type Hotel struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Address        string    `json:"address"`
	PricePerNight  float64   `json:"price_per_night"`
	Rating         float64   `json:"rating"`
	Amenities      []string  `json:"amenities"`
	ImageURL       string    `json:"image_url"`
	AvailableRooms int       `json:"available_rooms"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h Hotel) OfferingID() string  { return h.ID }
func (h Hotel) Kind() BookingType   { return BookingHotel }
func (h Hotel) UnitPrice() float64  { return h.PricePerNight }
func (h Hotel) Capacity() int       { return h.AvailableRooms }
func (h Hotel) DisplayName() string { return h.Name }

// Tour is a guided tour priced per person.
type Tour struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Duration        string    `json:"duration"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	Includes        []string  `json:"includes"`
	ImageURL        string    `json:"image_url"`
	MaxParticipants int       `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
}

func (t Tour) OfferingID() string  { return t.ID }
func (t Tour) Kind() BookingType   { return BookingTour }
func (t Tour) UnitPrice() float64  { return t.Price }
func (t Tour) Capacity() int       { return t.MaxParticipants }
func (t Tour) DisplayName() string { return t.Title }

// TransferRoute is a point-to-point transfer.  Price is charged per
// passenger and Seats is the passenger capacity of the vehicle (stored in
// the capacity column).
type TransferRoute struct {
	ID              string    `json:"id"`
	FromLocation    string    `json:"from_location"`
	ToLocation      string    `json:"to_location"`
	DistanceKm      float64   `json:"distance_km"`
	Price           float64   `json:"price"`
	VehicleType     string    `json:"vehicle_type"`
	Seats           int       `json:"capacity"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r TransferRoute) OfferingID() string { return r.ID }
func (r TransferRoute) Kind() BookingType  { return BookingTransfer }
func (r TransferRoute) UnitPrice() float64 { return r.Price }
func (r TransferRoute) Capacity() int      { return r.Seats }

func (r TransferRoute) DisplayName() string {
	return r.FromLocation + " → " + r.ToLocation
}
