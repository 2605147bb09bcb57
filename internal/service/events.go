package service

import (
	"context"

	"github.com/afriride/travel-booking/internal/queue"
)

// EventPublisher receives notifications about stored records.  Publish
// failures never fail the request that produced the record.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
	PublishContactReceived(ctx context.Context, ev queue.ContactReceivedEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishBookingCreated(context.Context, queue.BookingCreatedEvent) error {
	return nil
}

func (nopPublisher) PublishContactReceived(context.Context, queue.ContactReceivedEvent) error {
	return nil
}

// NopPublisher discards every event.
var NopPublisher EventPublisher = nopPublisher{}
