package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	handlersPkg "github.com/Ayoush26/HikeHighNepal/internal/handlers"
	"github.com/Ayoush26/HikeHighNepal/internal/inquiry"
	mw "github.com/Ayoush26/HikeHighNepal/internal/middleware"
)

// conversation returns the visitor's widget, keyed by session.
func conversation(r *http.Request) *inquiry.Widget {
	return chatStore.Get(mw.GetSession(r).ID)
}

func chatView(r *http.Request, conv *inquiry.Widget, errMsg string) *handlersPkg.ChatView {
	v := handlersPkg.BuildChatView(conv, whatsApp.ChatLink(), errMsg)
	v.CSRFToken = mw.CSRFToken(r)
	return v
}

// ChatHandler renders the chat panel. Without htmx it renders a standalone page
// so the form still works as a plain POST.
func ChatHandler(w http.ResponseWriter, r *http.Request) {
	conv := conversation(r)
	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_chat", chatView(r, conv, ""))
		return
	}
	vm := newPage(r, copyBundle.T("chat.title"), copyBundle.T("chat.subtitle"))
	vm.Chat = chatView(r, conv, "")
	vm.SEO.Robots = "noindex,nofollow"
	finishSEO(&vm)
	renderPage(w, r, "chat", vm)
}

// ChatTranscriptFrag returns the message list; the panel polls it while an
// acknowledgment is pending.
func ChatTranscriptFrag(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "frag_chat_transcript", chatView(r, conversation(r), ""))
}

// ChatMessageHandler submits the composer. Contact fields sent alongside the
// message are recorded first. Plain form posts are redirected to the WhatsApp
// link once a message is forwarded, and back to /chat otherwise.
func ChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	conv := conversation(r)
	if r.PostForm.Has("name") || r.PostForm.Has("email") {
		conv.SetContact(r.PostForm.Get("name"), r.PostForm.Get("email"))
	}

	htmx := mw.IsHTMX(r.Context())
	var handoff string
	ctx := inquiry.WithOpener(r.Context(), func(u string) error {
		if htmx {
			mw.TriggerEvent(w, "whatsapp:open", map[string]string{"url": u})
		}
		handoff = u
		return nil
	})
	res, err := conv.Submit(ctx, r.PostForm.Get("message"))

	var errMsg string
	switch {
	case err == nil:
		if res.Sent != nil {
			mw.LoggerFrom(ctx).Info("inquiry sent", zap.String("message_id", res.Sent.ID))
		}
	case errors.Is(err, inquiry.ErrEmptyMessage):
		// nothing to send
	case errors.Is(err, inquiry.ErrContactRequired):
		errMsg = inquiry.PromptContact
	default:
		mw.LoggerFrom(ctx).Error("inquiry submit", zap.Error(err))
		errMsg = copyBundle.T("errors.server")
	}

	if !htmx {
		// without htmx the browser itself follows the hand-off link
		target := "/chat"
		if handoff != "" {
			target = handoff
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "frag_chat", chatView(r, conv, errMsg))
}

// ChatContactHandler saves contact fields as they are typed.
func ChatContactHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	conversation(r).SetContact(r.PostForm.Get("name"), r.PostForm.Get("email"))
	w.WriteHeader(http.StatusNoContent)
}
