package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/russhil/telegram-ai-calendar/pkg/httpext"
)

// NewRouter wires the two routes the service exposes: the webhook receiver
// and the liveness probe, both on the root path.
func NewRouter(webhook *Webhook) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", webhook.Handle).Methods(http.MethodPost)
	r.HandleFunc("/", HandleHealth).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpext.JsonError(w, "Unknown route", http.StatusNotFound)
	})

	return r
}
