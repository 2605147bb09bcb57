package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer appends one line per booking or contact event to a log.  It
// reconnects with exponential backoff until ctx is cancelled.
type Consumer struct {
	url string
	out io.Writer
}

// NewConsumer returns a Consumer writing to out.
func NewConsumer(url string, out io.Writer) *Consumer {
	return &Consumer{url: url, out: out}
}

// Run consumes both queues until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Printf("event-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("event-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("event-consumer: set QoS failed: %v", err)
	}

	bookings, err := c.subscribe(ch, BookingCreatedQueue)
	if err != nil {
		return err
	}
	contacts, err := c.subscribe(ch, ContactReceivedQueue)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-bookings:
			if !ok {
				return errors.New("booking deliveries channel closed")
			}
			c.ack(d, c.HandleBooking(d.Body))
		case d, ok := <-contacts:
			if !ok {
				return errors.New("contact deliveries channel closed")
			}
			c.ack(d, c.HandleContact(d.Body))
		}
	}
}

func (c *Consumer) subscribe(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

func (c *Consumer) ack(d amqp.Delivery, err error) {
	if err != nil {
		log.Printf("event-consumer: handle message failed: %v", err)
		_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
		return
	}
	_ = d.Ack(false)
}

// HandleBooking formats a booking.created payload as one log line.
func (c *Consumer) HandleBooking(body []byte) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Booking created | booking_id=%s | type=%s | service=\"%s\" | customer=\"%s\" <%s> | date=%s | people=%d | total=€%.2f\n",
		ev.CreatedAt, ev.BookingID, ev.BookingType, ev.ServiceName, ev.CustomerName, ev.CustomerEmail,
		ev.BookingDate, ev.NumberOfPeople, ev.TotalPrice)
	return c.write(line)
}

// HandleContact formats a contact.received payload as one log line.
func (c *Consumer) HandleContact(body []byte) error {
	var ev ContactReceivedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Contact inquiry | inquiry_id=%s | from=\"%s\" <%s> | subject=\"%s\"\n",
		ev.ReceivedAt, ev.InquiryID, ev.Name, ev.Email, ev.Subject)
	return c.write(line)
}

func (c *Consumer) write(line string) error {
	if _, err := io.WriteString(c.out, line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
