package inquiry

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	// Greeting seeds every transcript.
	Greeting = "Hello! 👋 How can I help you plan your Nepal adventure today?"
	// AckForwarded is sent after a successful hand-off.
	AckForwarded = "Thank you for your message! 🙏 Our team will reply to you shortly. We've also sent your inquiry to our WhatsApp for faster response."
	// AckGeneric is sent when the hand-off could not be attempted.
	AckGeneric = "Thank you for your message! 🙏 Our team will reply to you shortly."
	// PromptContact asks for contact details before sending.
	PromptContact = "Please provide your name and email to continue."

	// DefaultAckDelay is the pause before the assistant acknowledges.
	DefaultAckDelay = time.Second
)

var (
	ErrEmptyMessage    = errors.New("inquiry: empty message")
	ErrContactRequired = errors.New("inquiry: name and email required")
	ErrClosed          = errors.New("inquiry: widget closed")
)

// QuickActions are canned prompts offered under the input.
var QuickActions = []string{"Everest Base Camp info", "Annapurna Circuit", "Peak climbing", "Custom trek"}

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one transcript entry.
type Message struct {
	ID        string
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// Contact holds the visitor's details.
type Contact struct {
	Name  string
	Email string
}

// Complete reports whether both fields are filled in.
func (c Contact) Complete() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Email) != ""
}

// State is the widget conversation state.
type State int

const (
	AwaitingFirstInput State = iota
	AwaitingContactInfo
	Ready
	Sending
)

func (s State) String() string {
	switch s {
	case AwaitingFirstInput:
		return "awaiting_first_input"
	case AwaitingContactInfo:
		return "awaiting_contact_info"
	case Ready:
		return "ready"
	case Sending:
		return "sending"
	default:
		return "unknown"
	}
}

// Result describes the effect of a submission.
type Result struct {
	// ContactRequested is set when the submission revealed the contact form
	// instead of sending.
	ContactRequested bool
	// Sent carries the appended user message.
	Sent *Message
}

// Option configures a Widget.
type Option func(*Widget)

// WithClock sets the clock used for timestamps and the acknowledgment delay.
func WithClock(c clock.Clock) Option {
	return func(w *Widget) {
		if c != nil {
			w.clock = c
		}
	}
}

// WithAckDelay overrides the acknowledgment delay.
func WithAckDelay(d time.Duration) Option {
	return func(w *Widget) {
		if d >= 0 {
			w.ackDelay = d
		}
	}
}

// WithLogger sets the logger for swallowed hand-off failures.
func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSource overrides the source tag embedded in hand-off payloads.
func WithSource(s string) Option {
	return func(w *Widget) {
		if s = strings.TrimSpace(s); s != "" {
			w.source = s
		}
	}
}

// Widget is a single visitor conversation. The transcript is append-only.
type Widget struct {
	mu       sync.Mutex
	handoff  Handoff
	clock    clock.Clock
	ackDelay time.Duration
	logger   *zap.Logger
	source   string
	entropy  io.Reader

	transcript  []Message
	contact     Contact
	state       State
	draft       string
	formVisible bool
	inflight    int
	timers      map[int]*clock.Timer
	nextTimer   int
	closed      bool
}

// NewWidget starts a conversation with the greeting already in place.
func NewWidget(h Handoff, opts ...Option) *Widget {
	w := &Widget{
		handoff:  h,
		clock:    clock.New(),
		ackDelay: DefaultAckDelay,
		logger:   zap.NewNop(),
		source:   DefaultSource,
		entropy:  ulid.Monotonic(rand.Reader, 0),
		state:    AwaitingFirstInput,
		timers:   map[int]*clock.Timer{},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.transcript = []Message{w.newMessageLocked(Greeting, SenderAssistant)}
	return w
}

// Submit handles the send action for text.
func (w *Widget) Submit(ctx context.Context, text string) (Result, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return Result{}, ErrClosed
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		w.mu.Unlock()
		return Result{}, ErrEmptyMessage
	}
	if !w.formVisible {
		w.formVisible = true
		w.draft = trimmed
		w.state = AwaitingContactInfo
		w.mu.Unlock()
		return Result{ContactRequested: true}, nil
	}
	if !w.contact.Complete() {
		w.draft = trimmed
		w.state = AwaitingContactInfo
		w.mu.Unlock()
		return Result{}, ErrContactRequired
	}

	w.state = Sending
	w.draft = ""
	msg := w.newMessageLocked(trimmed, SenderUser)
	w.transcript = append(w.transcript, msg)
	w.inflight++
	payload := Payload{
		Name:    strings.TrimSpace(w.contact.Name),
		Email:   strings.TrimSpace(w.contact.Email),
		Message: trimmed,
		Time:    w.clock.Now(),
		Source:  w.source,
	}
	w.mu.Unlock()

	ack := AckForwarded
	if err := w.open(ctx, payload); err != nil {
		w.logger.Warn("inquiry hand-off failed", zap.Error(err))
		ack = AckGeneric
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		id := w.nextTimer
		w.nextTimer++
		w.timers[id] = w.clock.AfterFunc(w.ackDelay, func() { w.acknowledge(id, ack) })
	}
	return Result{Sent: &msg}, nil
}

func (w *Widget) open(ctx context.Context, p Payload) (err error) {
	if w.handoff == nil {
		return ErrNoOpener
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("inquiry: hand-off panicked")
		}
	}()
	return w.handoff.Open(ctx, p)
}

func (w *Widget) acknowledge(id int, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	delete(w.timers, id)
	w.transcript = append(w.transcript, w.newMessageLocked(text, SenderAssistant))
	if w.inflight > 0 {
		w.inflight--
	}
	if w.inflight == 0 {
		w.state = w.restingStateLocked()
	}
}

// SetContact records the visitor's details.
func (w *Widget) SetContact(name, email string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contact = Contact{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if w.state == Sending || !w.formVisible {
		return
	}
	w.state = w.restingStateLocked()
}

func (w *Widget) restingStateLocked() State {
	if !w.formVisible {
		return AwaitingFirstInput
	}
	if w.contact.Complete() {
		return Ready
	}
	return AwaitingContactInfo
}

// Transcript returns a copy of the conversation so far.
func (w *Widget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Message(nil), w.transcript...)
}

// State returns the conversation state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Contact returns the recorded details.
func (w *Widget) Contact() Contact {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contact
}

// Draft returns text held back while contact details are collected.
func (w *Widget) Draft() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// ContactFormVisible reports whether the contact form has been revealed.
func (w *Widget) ContactFormVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.formVisible
}

// Close cancels pending acknowledgments and rejects further submissions.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = map[int]*clock.Timer{}
}

func (w *Widget) newMessageLocked(text string, sender Sender) Message {
	now := w.clock.Now()
	return Message{
		ID:        ulid.MustNew(ulid.Timestamp(now), w.entropy).String(),
		Text:      text,
		Sender:    sender,
		Timestamp: now,
	}
}
