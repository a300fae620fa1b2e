package main

import "net/http"

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", app.handleHealthz)

	// login and signup share the index route, split by the action field
	mux.HandleFunc("POST /{$}", app.handleAuth)
	mux.HandleFunc("GET /logout", app.handleLogout)
	mux.HandleFunc("GET /search", app.handleSearch)

	mux.HandleFunc("GET /home", app.requireAccount(app.handleHome))
	mux.HandleFunc("GET /events", app.requireAccount(app.handleEvents))
	mux.HandleFunc("GET /profile", app.requireAccount(app.handleProfile))
	mux.HandleFunc("GET /settings", app.requireAccount(app.handleSettingsView))
	mux.HandleFunc("POST /settings", app.requireAccount(app.handleSettingsUpdate))

	mux.HandleFunc("POST /create_event", app.requireAccount(app.handleCreateEvent))
	mux.HandleFunc("GET /event/{id}", app.requireAccount(app.handleEventDetail))
	mux.HandleFunc("GET /event/{id}/edit", app.requireAccount(app.handleEditEventView))
	mux.HandleFunc("POST /event/{id}/edit", app.requireAccount(app.handleEditEvent))
	mux.HandleFunc("GET /event/{id}/cancel", app.requireAccount(app.handleCancelEvent))
	mux.HandleFunc("GET /signup/{id}", app.requireAccount(app.handleEventSignup))
	mux.HandleFunc("GET /decline/{id}", app.requireAccount(app.handleEventDecline))

	return app.requestLogger(mux)
}

func (app *application) handleHealthz(w http.ResponseWriter, r *http.Request) {
	_ = app.SendSuccessJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
