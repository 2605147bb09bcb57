// Package bot is a Telegram front end for the booking flow.  Each chat
// gets its own booking.Controller, driven one question at a time.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/pricing"
	"github.com/afriride/travel-booking/internal/service"
)

// Callback data prefixes.
const (
	cbBook    = "BOOK:"
	cbConfirm = "CONFIRM"
	cbCancel  = "CANCEL"
)

// Sender is the part of *tgbotapi.BotAPI the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type session struct {
	form  *booking.Controller[model.Offering]
	steps []step
	pos   int
}

func (s *session) current() step { return s.steps[s.pos] }

// Bot routes Telegram updates to the catalog, booking and reservation
// services.
type Bot struct {
	api          Sender
	catalog      *service.CatalogService
	submitter    booking.Submitter
	reservations *service.ReservationService
	opts         []booking.Option

	mu       sync.Mutex
	sessions map[int64]*session
}

// New constructs a Bot.  opts are passed to every booking controller.
func New(api Sender, catalog *service.CatalogService, submitter booking.Submitter, reservations *service.ReservationService, opts ...booking.Option) *Bot {
	return &Bot{
		api:          api,
		catalog:      catalog,
		submitter:    submitter,
		reservations: reservations,
		opts:         opts,
		sessions:     map[int64]*session{},
	}
}

// Run handles updates until ctx is done or the channel closes.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, u)
		}
	}
}

// HandleUpdate processes one update.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	if cq := u.CallbackQuery; cq != nil {
		_, _ = b.api.Request(tgbotapi.NewCallback(cq.ID, ""))
		if cq.Message != nil {
			b.handleCallback(ctx, cq.Message.Chat.ID, cq.Data)
		}
		return
	}
	msg := u.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command(), strings.Fields(msg.CommandArguments()))
		return
	}
	if s := b.session(chatID); s != nil {
		b.answer(ctx, chatID, s, msg.Text)
		return
	}
	b.send(chatID, helpText)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, cmd string, args []string) {
	switch cmd {
	case "start", "help":
		b.send(chatID, helpText)
	case "hotels":
		b.listHotels(ctx, chatID)
	case "tours":
		b.listTours(ctx, chatID, strings.Join(args, " "))
	case "transfers":
		b.listTransfers(ctx, chatID)
	case "book":
		if len(args) != 2 {
			b.send(chatID, "Usage: /book <hotel|tour|transfer> <id>")
			return
		}
		kind, ok := model.ParseBookingType(args[0])
		if !ok {
			b.send(chatID, "Unknown booking type. Use hotel, tour or transfer.")
			return
		}
		b.startBooking(ctx, chatID, kind, args[1])
	case "reservations":
		if len(args) != 1 {
			b.send(chatID, "Usage: /reservations <email>")
			return
		}
		b.lookup(ctx, chatID, args[0])
	case "cancel":
		b.cancel(chatID)
	default:
		b.send(chatID, helpText)
	}
}

func (b *Bot) handleCallback(ctx context.Context, chatID int64, data string) {
	switch {
	case strings.HasPrefix(data, cbBook):
		parts := strings.SplitN(strings.TrimPrefix(data, cbBook), ":", 2)
		if len(parts) != 2 {
			return
		}
		kind, ok := model.ParseBookingType(parts[0])
		if !ok {
			return
		}
		b.startBooking(ctx, chatID, kind, parts[1])
	case data == cbConfirm:
		b.submit(ctx, chatID)
	case data == cbCancel:
		b.cancel(chatID)
	}
}

func (b *Bot) listHotels(ctx context.Context, chatID int64) {
	hotels, err := b.catalog.Hotels(ctx)
	if err != nil {
		b.send(chatID, "Failed to load hotels. Please try again.")
		return
	}
	if len(hotels) == 0 {
		b.send(chatID, "No hotels available right now.")
		return
	}
	for _, h := range hotels {
		b.sendOffer(chatID, formatHotel(h), h)
	}
}

func (b *Bot) listTours(ctx context.Context, chatID int64, category string) {
	tours, err := b.catalog.Tours(ctx, category)
	if err != nil {
		b.send(chatID, "Failed to load tours. Please try again.")
		return
	}
	if len(tours) == 0 {
		b.send(chatID, "No tours found.")
		return
	}
	for _, t := range tours {
		b.sendOffer(chatID, formatTour(t), t)
	}
}

func (b *Bot) listTransfers(ctx context.Context, chatID int64) {
	routes, err := b.catalog.TransferRoutes(ctx)
	if err != nil {
		b.send(chatID, "Failed to load transfers. Please try again.")
		return
	}
	if len(routes) == 0 {
		b.send(chatID, "No transfer routes available right now.")
		return
	}
	b.send(chatID, formatGroups(service.GroupByOrigin(routes)))
}

func (b *Bot) sendOffer(chatID int64, text string, o model.Offering) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Book", cbBook+string(o.Kind())+":"+o.OfferingID()),
	))
	b.sendMsg(m)
}

func (b *Bot) startBooking(ctx context.Context, chatID int64, kind model.BookingType, id string) {
	o, err := b.catalog.Offering(ctx, kind, id)
	if err != nil {
		if errors.Is(err, booking.ErrOfferingNotFound) {
			b.send(chatID, booking.UserMessage(err))
		} else {
			b.send(chatID, "Failed to load the offer. Please try again.")
		}
		return
	}

	opts := append([]booking.Option{booking.WithOnClose(func() { b.drop(chatID) })}, b.opts...)
	s := &session{
		form:  booking.NewController[model.Offering](b.submitter, opts...),
		steps: stepsFor(kind),
	}
	_ = s.form.Open(o) // new controller, nothing in flight

	b.mu.Lock()
	if old := b.sessions[chatID]; old != nil {
		old.form.Close()
	}
	b.sessions[chatID] = s
	b.mu.Unlock()

	b.send(chatID, fmt.Sprintf("Booking %s.\n%s", o.DisplayName(), prompts[s.current()]))
}

func (b *Bot) answer(ctx context.Context, chatID int64, s *session, text string) {
	st := s.current()
	if st == stepReview {
		b.send(chatID, "Use the buttons above to confirm or cancel, or /cancel.")
		return
	}
	var applyErr error
	if err := s.form.Update(func(f *booking.Form) { applyErr = apply(f, st, text) }); err != nil {
		b.send(chatID, booking.UserMessage(err))
		return
	}
	if applyErr != nil {
		b.send(chatID, applyErr.Error())
		return
	}
	s.pos++
	if s.current() != stepReview {
		b.send(chatID, prompts[s.current()])
		return
	}
	b.review(chatID, s)
}

func (b *Bot) review(chatID int64, s *session) {
	o, _ := s.form.Offering()
	q, _ := s.form.Summary()
	m := tgbotapi.NewMessage(chatID, formatReview(o, s.form.Form(), q))
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Confirm", cbConfirm),
		tgbotapi.NewInlineKeyboardButtonData("Cancel", cbCancel),
	))
	b.sendMsg(m)
}

func (b *Bot) submit(ctx context.Context, chatID int64) {
	s := b.session(chatID)
	if s == nil || s.current() != stepReview {
		b.send(chatID, "There is no booking waiting for confirmation.")
		return
	}
	if s.form.Phase() == booking.PhaseConfirmed {
		b.send(chatID, "This booking is already confirmed.")
		return
	}
	bk, err := s.form.Submit(ctx)
	if err != nil {
		var ve *booking.ValidationError
		if errors.As(err, &ve) {
			// Ask again from the first question; each answer overwrites the old one.
			s.pos = 0
			b.send(chatID, booking.UserMessage(err)+"\n\n"+prompts[s.current()])
			return
		}
		b.send(chatID, booking.UserMessage(err))
		return
	}
	b.send(chatID, fmt.Sprintf("Booking confirmed! Reference %s, total %s. We will contact you at %s.",
		bk.ID, pricing.Format(bk.TotalPrice), bk.CustomerEmail))
}

func (b *Bot) cancel(chatID int64) {
	b.mu.Lock()
	s := b.sessions[chatID]
	delete(b.sessions, chatID)
	b.mu.Unlock()
	if s == nil {
		b.send(chatID, "Nothing to cancel.")
		return
	}
	s.form.Close()
	b.send(chatID, "Booking cancelled.")
}

func (b *Bot) lookup(ctx context.Context, chatID int64, email string) {
	items, err := b.reservations.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, service.ErrEmailRequired) {
			b.send(chatID, "Usage: /reservations <email>")
			return
		}
		b.send(chatID, booking.MsgLookupFailed)
		return
	}
	b.send(chatID, formatReservations(service.NormalizeEmail(email), items))
}

func (b *Bot) session(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[chatID]
}

// drop removes the chat's session once its confirmation has been shown.
func (b *Bot) drop(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s := b.sessions[chatID]; s != nil && s.form.Phase() == booking.PhaseClosed {
		delete(b.sessions, chatID)
	}
}

func (b *Bot) send(chatID int64, text string) {
	b.sendMsg(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMsg(m tgbotapi.MessageConfig) {
	if _, err := b.api.Send(m); err != nil {
		log.Printf("bot: send to %d: %v", m.ChatID, err)
	}
}
