package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	clientCookie  = "mealfinder_client"  // durable, keys persisted preferences
	sessionCookie = "mealfinder_session" // browser session, keys location and results

	clientCookieMaxAge = 365 * 24 * time.Hour
)

type ctxKey int

const (
	ctxClientID ctxKey = iota
	ctxSessionID
)

// identify makes sure the request carries client and session ids, issuing cookies for missing ones
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := cookieID(r, clientCookie)
		if clientID == "" {
			clientID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     clientCookie,
				Value:    clientID,
				Path:     "/",
				MaxAge:   int(clientCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sessionID := cookieID(r, sessionCookie)
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxClientID, clientID)
		ctx = context.WithValue(ctx, ctxSessionID, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cookieID returns the id stored in the cookie, empty if missing or not a uuid
func cookieID(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

func clientID(r *http.Request) string {
	id, _ := r.Context().Value(ctxClientID).(string)
	return id
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionID).(string)
	return id
}
