package model

import "strings"

// TypeInfo describes how a booking type is labelled in listings.
type TypeInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// StatusInfo describes how a booking status is labelled in listings.
type StatusInfo struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
}

var typeInfo = map[BookingType]TypeInfo{
	BookingTransfer: {Label: "Transfer", Icon: "plane"},
	BookingHotel:    {Label: "Hotel", Icon: "hotel"},
	BookingTour:     {Label: "Tour", Icon: "map-pin"},
}

var statusInfo = map[string]StatusInfo{
	StatusConfirmed: {Label: "Confirmed", Badge: "green"},
	StatusPending:   {Label: "Pending", Badge: "yellow"},
	StatusCancelled: {Label: "Cancelled", Badge: "red"},
}

// Info returns the label and icon for t.  Unknown tags get a capitalised
// label and no icon.
func (t BookingType) Info() TypeInfo {
	if info, ok := typeInfo[t]; ok {
		return info
	}
	return TypeInfo{Label: capitalize(string(t))}
}

// StatusDisplay returns the label and badge colour for a booking status.
// Unknown statuses render grey.
func StatusDisplay(status string) StatusInfo {
	if status == "" {
		status = StatusPending
	}
	if info, ok := statusInfo[status]; ok {
		return info
	}
	return StatusInfo{Label: capitalize(status), Badge: "gray"}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
