package queue

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestHandleBooking(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsumer("", &buf)
	body, _ := json.Marshal(BookingCreatedEvent{
		BookingID:      "b-1",
		BookingType:    "hotel",
		ServiceName:    "Rogner",
		CustomerName:   "Ana Hoxha",
		CustomerEmail:  "ana@example.com",
		BookingDate:    "2024-06-01",
		NumberOfPeople: 2,
		TotalPrice:     300,
		CreatedAt:      "2024-05-20T10:00:00Z",
	})
	if err := c.HandleBooking(body); err != nil {
		t.Fatal(err)
	}
	line := buf.String()
	for _, want := range []string{"booking_id=b-1", "type=hotel", `service="Rogner"`, "people=2", "total=€300.00"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("line should end with a newline")
	}
}

func TestHandleContact(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsumer("", &buf)
	body, _ := json.Marshal(ContactReceivedEvent{InquiryID: "c-1", Name: "Ana", Email: "ana@example.com", Subject: "Feedback"})
	if err := c.HandleContact(body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `subject="Feedback"`) {
		t.Fatalf("unexpected line %q", buf.String())
	}
}

func TestHandleRejectsGarbage(t *testing.T) {
	c := NewConsumer("", &bytes.Buffer{})
	if err := c.HandleBooking([]byte("{")); err == nil {
		t.Fatal("want unmarshal error")
	}
}
