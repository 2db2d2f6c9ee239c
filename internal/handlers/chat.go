package handlers

import (
	"github.com/Ayoush26/HikeHighNepal/internal/inquiry"
)

// ChatMessage is one rendered transcript bubble.
type ChatMessage struct {
	ID       string
	Text     string
	FromUser bool
	Time     string
}

// ChatView is the inquiry widget payload.
type ChatView struct {
	Messages     []ChatMessage
	ShowContact  bool
	Name         string
	Email        string
	Draft        string
	Sending      bool
	QuickActions []string
	Error        string
	WhatsAppURL  string
	// CSRFToken backs the plain form fallback when htmx is unavailable.
	CSRFToken    string
}

// BuildChatView snapshots w for rendering. errMsg is shown under the input.
func BuildChatView(w *inquiry.Widget, whatsAppURL, errMsg string) *ChatView {
	contact := w.Contact()
	v := &ChatView{
		ShowContact:  w.ContactFormVisible(),
		Name:         contact.Name,
		Email:        contact.Email,
		Draft:        w.Draft(),
		Sending:      w.State() == inquiry.Sending,
		QuickActions: inquiry.QuickActions,
		Error:        errMsg,
		WhatsAppURL:  whatsAppURL,
	}
	for _, m := range w.Transcript() {
		v.Messages = append(v.Messages, ChatMessage{
			ID:       m.ID,
			Text:     m.Text,
			FromUser: m.Sender == inquiry.SenderUser,
			Time:     m.Timestamp.Format("3:04 PM"),
		})
	}
	return v
}
