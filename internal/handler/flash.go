package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "fraudwatch"

// Flash stores one-shot messages in a cookie session, shown on the next
// form render.
type Flash struct {
	store sessions.Store
}

func NewFlash(secret string) *Flash {
	return &Flash{store: sessions.NewCookieStore([]byte(secret))}
}

// Redirect flashes message and sends the client back to target.
func (f *Flash) Redirect(w http.ResponseWriter, r *http.Request, target, message string) {
	sess, _ := f.store.Get(r, sessionName)
	sess.AddFlash(message)
	if err := sess.Save(r, w); err != nil {
		slog.Error("flash: save session", "err", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Take returns pending messages and clears them.
func (f *Flash) Take(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := f.store.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) > 0 {
		if err := sess.Save(r, w); err != nil {
			slog.Error("flash: save session", "err", err)
		}
	}

	msgs := make([]string, 0, len(raw))
	for _, m := range raw {
		if s, ok := m.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
