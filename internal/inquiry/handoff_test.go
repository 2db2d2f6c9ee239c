package inquiry

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPayloadText(t *testing.T) {
	p := Payload{
		Name:    "Sarah",
		Email:   "sarah@example.com",
		Message: "EBC in October?",
		Time:    time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC),
		Source:  DefaultSource,
	}
	want := "🏔️ *New Inquiry from HikeHigh Nepal Website*\n\n" +
		"👤 *Name:* Sarah\n" +
		"📧 *Email:* sarah@example.com\n" +
		"💬 *Message:* EBC in October?\n\n" +
		"⏰ *Time:* 2024-10-01 09:30:00 UTC\n" +
		"🌐 *Source:* Website Chat Widget"
	require.Equal(t, want, p.Text())
}

func TestWhatsAppLinkEncodesPayload(t *testing.T) {
	wa := NewWhatsApp(DefaultRecipient)
	p := Payload{Name: "A & B", Email: "a@b.c", Message: "x+y = z?", Time: time.Unix(0, 0).UTC(), Source: DefaultSource}
	link, err := wa.Link(p)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://wa.me/9779842597331?text="))
	require.NotContains(t, link, "+", "spaces are encoded as %20")

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, p.Text(), u.Query().Get("text"))
}

func TestWhatsAppDirectLinks(t *testing.T) {
	wa := NewWhatsApp(DefaultRecipient)
	require.Equal(t, "https://wa.me/9779842597331", wa.ChatLink())

	u, err := url.Parse(wa.DirectLink())
	require.NoError(t, err)
	require.Equal(t, "/9779842597331", u.Path)
	require.Contains(t, u.Query().Get("text"), "interested in booking a Himalayan adventure")

	empty := NewWhatsApp("")
	require.Empty(t, empty.DirectLink())
	require.Empty(t, empty.ChatLink())
	_, err = empty.Link(Payload{})
	require.ErrorIs(t, err, ErrNoRecipient)
}

func TestWhatsAppOpenUsesContextOpener(t *testing.T) {
	wa := NewWhatsApp(DefaultRecipient)
	var opened string
	ctx := WithOpener(context.Background(), func(u string) error {
		opened = u
		return nil
	})
	p := Payload{Name: "Sarah", Email: "s@example.com", Message: "hi", Source: DefaultSource}
	require.NoError(t, wa.Open(ctx, p))
	want, _ := wa.Link(p)
	require.Equal(t, want, opened)

	require.ErrorIs(t, wa.Open(context.Background(), p), ErrNoOpener)

	blocked := WithOpener(context.Background(), func(string) error { return errors.New("blocked") })
	require.Error(t, wa.Open(blocked, p))
}
