package booking

import (
	"context"
	"sync"
	"time"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/pricing"
)

// ConfirmationDisplay is how long a confirmed booking stays on screen
// before the form closes.
const ConfirmationDisplay = 3 * time.Second

// Phase is the state of a Controller.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseEditing
	PhaseSubmitting
	PhaseConfirmed
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Submitter performs the single create call for a request.
type Submitter interface {
	Submit(ctx context.Context, req Request) (*model.Booking, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, req Request) (*model.Booking, error)

func (f SubmitterFunc) Submit(ctx context.Context, req Request) (*model.Booking, error) {
	return f(ctx, req)
}

// Controller drives one booking form for an offering variant O: it holds
// the selected offering and the input, recomputes the price summary, and
// runs at most one submission at a time.  After a confirmed submission
// the form is reset and closes once the confirmation display elapses; a
// failed submission keeps the input so the customer can retry by hand.
type Controller[O model.Offering] struct {
	submitter Submitter
	display   time.Duration
	afterFunc func(time.Duration, func()) func() bool
	onClose   func()

	mu       sync.Mutex
	phase    Phase
	offering O
	form     Form
	lastErr  error
	booked   *model.Booking
	gen      uint64
	stop     func() bool
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	display   time.Duration
	afterFunc func(time.Duration, func()) func() bool
	onClose   func()
}

// WithConfirmationDisplay overrides ConfirmationDisplay.
func WithConfirmationDisplay(d time.Duration) Option {
	return func(o *options) { o.display = d }
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.  The returned
// function must stop the pending call.
func WithAfterFunc(f func(time.Duration, func()) func() bool) Option {
	return func(o *options) { o.afterFunc = f }
}

// WithOnClose registers a callback run after the confirmation display
// closes the form.
func WithOnClose(f func()) Option {
	return func(o *options) { o.onClose = f }
}

// NewController returns a closed controller.
func NewController[O model.Offering](s Submitter, opts ...Option) *Controller[O] {
	o := options{
		display: ConfirmationDisplay,
		afterFunc: func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[O]{
		submitter: s,
		display:   o.display,
		afterFunc: o.afterFunc,
		onClose:   o.onClose,
		form:      NewForm(),
	}
}

// Open selects an offering and shows an empty form.  It returns
// ErrSubmitInFlight and changes nothing while a submission is outstanding.
func (c *Controller[O]) Open(o O) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseSubmitting {
		return ErrSubmitInFlight
	}
	c.cancelTimerLocked()
	c.offering = o
	c.form = NewForm()
	c.lastErr = nil
	c.booked = nil
	c.phase = PhaseEditing
	return nil
}

// Close hides the form.  Input is discarded.  A submission in flight is
// not cancelled; its outcome is still recorded.
func (c *Controller[O]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimerLocked()
	if c.phase != PhaseSubmitting {
		c.phase = PhaseClosed
		c.form = NewForm()
	}
}

// Phase reports the current state.
func (c *Controller[O]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Offering returns the selected offering; ok is false while closed.
func (c *Controller[O]) Offering() (o O, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offering, c.phase != PhaseClosed
}

// Form returns a copy of the current input.
func (c *Controller[O]) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Err returns the error of the last failed submission.
func (c *Controller[O]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Booking returns the record stored by the last confirmed submission.
func (c *Controller[O]) Booking() *model.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.booked
}

// Update edits the input.  It is rejected while closed or submitting; a
// failed form goes back to editing.
func (c *Controller[O]) Update(edit func(*Form)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case PhaseClosed, PhaseConfirmed:
		return ErrClosed
	case PhaseSubmitting:
		return ErrSubmitInFlight
	}
	edit(&c.form)
	c.phase = PhaseEditing
	return nil
}

// Summary is the live price summary of the current input.
func (c *Controller[O]) Summary() (pricing.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseClosed {
		return pricing.Quote{}, ErrClosed
	}
	return Quote(c.offering, c.form), nil
}

// Submit sends the current input through the submitter exactly once.  A
// second call while the first is outstanding returns ErrSubmitInFlight
// without calling the submitter.
func (c *Controller[O]) Submit(ctx context.Context) (*model.Booking, error) {
	c.mu.Lock()
	switch c.phase {
	case PhaseClosed, PhaseConfirmed:
		c.mu.Unlock()
		return nil, ErrClosed
	case PhaseSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	c.phase = PhaseSubmitting
	req := Request{Type: c.offering.Kind(), ServiceID: c.offering.OfferingID(), Form: c.form}
	c.mu.Unlock()

	b, err := c.submitter.Submit(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.phase = PhaseFailed
		c.lastErr = err
		return nil, err
	}
	c.phase = PhaseConfirmed
	c.lastErr = nil
	c.booked = b
	c.form = NewForm()
	c.gen++
	gen := c.gen
	c.stop = c.afterFunc(c.display, func() { c.expire(gen) })
	return b, nil
}

func (c *Controller[O]) expire(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.phase != PhaseConfirmed {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseClosed
	c.stop = nil
	onClose := c.onClose
	c.mu.Unlock()
	if onClose != nil {
		onClose()
	}
}

func (c *Controller[O]) cancelTimerLocked() {
	c.gen++
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}
