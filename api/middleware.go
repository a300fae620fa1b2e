package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"event-signup/data/models"
)

const sessionCookieName = "session"

type contextKey string

const accountContextKey contextKey = "account"

// requestLogger logs basic request details and latency.
func (app *application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		app.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requireAccount resolves the session cookie to an account and stores it on
// the request context. Requests without a live session get a 401.
func (app *application) requireAccount(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			_ = app.SendErrorJSON(w, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}

		acct, err := app.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			app.sendDomainError(w, err)
			return
		}
		if acct == nil {
			_ = app.SendErrorJSON(w, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, acct)
		next(w, r.WithContext(ctx))
	}
}

// accountFrom returns the account requireAccount put on the context.
func accountFrom(r *http.Request) *models.Account {
	acct, _ := r.Context().Value(accountContextKey).(*models.Account)
	return acct
}

func (app *application) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(app.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *application) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
