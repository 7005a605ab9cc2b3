package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Every failure leaves through writeError, so all endpoints share one
// envelope: {"error": "..."}.

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// serverError logs the underlying cause and responds with a generic 500;
// internals never leak to clients.
func serverError(w http.ResponseWriter, err error, what string) {
	log.Error().Err(err).Msg(what)
	writeError(w, http.StatusInternalServerError, what)
}
