package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		w.Header().Add("Vary", "HX-Request")
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TriggerEvent queues a client-side event via the HX-Trigger header. Events
// set on the same response are merged.
func TriggerEvent(w http.ResponseWriter, name string, detail any) {
	events := map[string]any{}
	if raw := w.Header().Get("HX-Trigger"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &events); err != nil {
			events = map[string]any{raw: nil}
		}
	}
	events[name] = detail
	b, err := json.Marshal(events)
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}
