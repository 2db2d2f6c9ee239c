package inquiry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultSource tags inquiries originating from the chat widget.
	DefaultSource = "Website Chat Widget"
	// DefaultRecipient is the business WhatsApp number.
	DefaultRecipient = "9779842597331"

	defaultWhatsAppBase = "https://wa.me"
	directInquiryText   = "Hi HikeHigh Nepal! I'm interested in booking a Himalayan adventure. Can you help me plan my trek?"
	timestampLayout     = "2006-01-02 15:04:05 MST"
)

var (
	// ErrNoOpener is returned when a hand-off is attempted without a browsing
	// context to open the link in.
	ErrNoOpener = errors.New("inquiry: no link opener in context")
	// ErrNoRecipient is returned when the messaging recipient is not configured.
	ErrNoRecipient = errors.New("inquiry: missing recipient")
)

// Payload is the content forwarded to the messaging channel.
type Payload struct {
	Name    string
	Email   string
	Message string
	Time    time.Time
	Source  string
}

// Text renders the multi-line message body.
func (p Payload) Text() string {
	var b strings.Builder
	b.WriteString("🏔️ *New Inquiry from HikeHigh Nepal Website*\n\n")
	fmt.Fprintf(&b, "👤 *Name:* %s\n", p.Name)
	fmt.Fprintf(&b, "📧 *Email:* %s\n", p.Email)
	fmt.Fprintf(&b, "💬 *Message:* %s\n\n", p.Message)
	fmt.Fprintf(&b, "⏰ *Time:* %s\n", p.Time.Format(timestampLayout))
	fmt.Fprintf(&b, "🌐 *Source:* %s", p.Source)
	return b.String()
}

// Handoff forwards an inquiry to an external channel. Delivery is never
// confirmed; an error only means the hand-off could not be attempted.
type Handoff interface {
	Open(ctx context.Context, p Payload) error
}

// Opener opens url in a new browsing context.
type Opener func(url string) error

type openerKey struct{}

// WithOpener attaches the link opener for the current request.
func WithOpener(ctx context.Context, fn Opener) context.Context {
	return context.WithValue(ctx, openerKey{}, fn)
}

func openerFrom(ctx context.Context) Opener {
	fn, _ := ctx.Value(openerKey{}).(Opener)
	return fn
}

// WhatsApp hands inquiries off through wa.me deep links.
type WhatsApp struct {
	Recipient string
	BaseURL   string
}

// NewWhatsApp builds a WhatsApp hand-off for recipient.
func NewWhatsApp(recipient string) WhatsApp {
	return WhatsApp{Recipient: strings.TrimSpace(recipient), BaseURL: defaultWhatsAppBase}
}

func (w WhatsApp) base() string {
	if b := strings.TrimRight(strings.TrimSpace(w.BaseURL), "/"); b != "" {
		return b
	}
	return defaultWhatsAppBase
}

// Link builds the deep link carrying the payload text.
func (w WhatsApp) Link(p Payload) (string, error) {
	return w.linkWithText(p.Text())
}

// DirectLink is the static deep link with a generic pre-filled inquiry.
func (w WhatsApp) DirectLink() string {
	link, err := w.linkWithText(directInquiryText)
	if err != nil {
		return ""
	}
	return link
}

// ChatLink opens a blank conversation with the recipient.
func (w WhatsApp) ChatLink() string {
	if w.Recipient == "" {
		return ""
	}
	return w.base() + "/" + url.PathEscape(w.Recipient)
}

func (w WhatsApp) linkWithText(text string) (string, error) {
	if w.Recipient == "" {
		return "", ErrNoRecipient
	}
	return w.base() + "/" + url.PathEscape(w.Recipient) + "?text=" + encodeComponent(text), nil
}

// Open builds the link and hands it to the request's opener.
func (w WhatsApp) Open(ctx context.Context, p Payload) error {
	link, err := w.Link(p)
	if err != nil {
		return err
	}
	open := openerFrom(ctx)
	if open == nil {
		return ErrNoOpener
	}
	if err := open(link); err != nil {
		return fmt.Errorf("inquiry: open link: %w", err)
	}
	return nil
}

// encodeComponent percent-encodes s with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
