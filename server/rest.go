package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/umputun/mealfinder/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// goalsHandler returns the goal catalog
func (s *Server) goalsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"goals": domain.Goals()})
}

// respondWithError logs the error and sends a plain text message to the client.
// htmx requests get the message only, details stay in the log.
func (s *Server) respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	switch {
	case err != nil && code >= http.StatusInternalServerError:
		log.Printf("[ERROR] %s: %v", msg, err)
	case err != nil:
		log.Printf("[WARN] %s: %v", msg, err)
	default:
		log.Printf("[DEBUG] %s", msg)
	}
	http.Error(w, msg, code)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}
