package main

import (
	"errors"
	"net/http"
	"time"

	"event-signup/data/models"
	"event-signup/domain"
)

// accountResponse is the outward shape of an account; the password hash
// never leaves the server.
type accountResponse struct {
	Username        string           `json:"username"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Desc            string           `json:"desc"`
	Hobbies         string           `json:"hobbies"`
	Age             string           `json:"age"`
	IsOrganizer     bool             `json:"is_organizer"`
	EventAttendance models.StringSet `json:"event_attendance"`
}

func newAccountResponse(a *models.Account) accountResponse {
	return accountResponse{
		Username:        a.Username,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Desc:            a.Desc,
		Hobbies:         a.Hobbies,
		Age:             a.Age,
		IsOrganizer:     a.IsOrganizer,
		EventAttendance: a.EventAttendance,
	}
}

// handleAuth serves the index route, where the action field picks between
// logging in and signing up.
func (app *application) handleAuth(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}

	switch r.PostFormValue("action") {
	case "login":
		app.login(w, r)
	case "signup":
		app.signup(w, r)
	default:
		_ = app.SendErrorJSON(w, http.StatusBadRequest, errors.New("action must be login or signup"))
	}
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	acct, err := app.accounts.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	token, err := app.sessions.Issue(acct.Username)
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	app.setSessionCookie(w, token)
	_ = app.SendNoticeJSON(w, http.StatusOK, "Login successful!", newAccountResponse(acct))
}

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	acct, err := app.accounts.Create(r.Context(), domain.CreateAccountInput{
		Username:    r.PostFormValue("username"),
		Password:    r.PostFormValue("password"),
		IsOrganizer: r.PostForm.Has("is_organizer"),
	})
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendNoticeJSON(w, http.StatusCreated,
		"Account created successfully! You can now log in.", newAccountResponse(acct))
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	app.clearSessionCookie(w)
	_ = app.SendNoticeJSON(w, http.StatusOK, "You have been logged out!", nil)
}

// handleSearch returns the names of events matching the query, case
// insensitively. An empty query is an empty result, not a full listing.
func (app *application) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	names := []string{}

	if query != "" {
		events, err := app.events.Search(r.Context(), query)
		if err != nil {
			app.sendDomainError(w, err)
			return
		}
		for _, e := range events {
			names = append(names, e.Name)
		}
	}

	_ = app.SendSuccessJSON(w, http.StatusOK, names, "events")
}

// handleHome shows organizers their own events and everyone else a handful
// of upcoming ones.
func (app *application) handleHome(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	if acct.IsOrganizer {
		events, err := app.events.ByOrganizer(r.Context(), acct.Username)
		if err != nil {
			app.sendDomainError(w, err)
			return
		}
		_ = app.SendSuccessJSON(w, http.StatusOK, newEventResponses(events), "managed_events")
		return
	}

	events, err := app.events.Upcoming(r.Context(), time.Now())
	if err != nil {
		app.sendDomainError(w, err)
		return
	}
	if len(events) > 6 {
		events = events[:6]
	}
	_ = app.SendSuccessJSON(w, http.StatusOK, newEventResponses(events), "featured_events")
}

// handleEvents lists events: an organizer's own, or upcoming ones for
// everyone else, optionally narrowed by a search term.
func (app *application) handleEvents(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	var events []models.Event
	var err error
	if acct.IsOrganizer {
		events, err = app.events.ByOrganizer(r.Context(), acct.Username)
	} else {
		events, err = app.events.Upcoming(r.Context(), time.Now())
	}
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	if search := r.URL.Query().Get("search"); search != "" {
		events = filterEventsByName(events, search)
	}

	_ = app.SendSuccessJSON(w, http.StatusOK, newEventResponses(events), "events")
}

// handleProfile returns the acting account plus its managed or attended
// events.
func (app *application) handleProfile(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	payload := map[string]interface{}{"profile": newAccountResponse(acct)}

	if acct.IsOrganizer {
		events, err := app.events.ByOrganizer(r.Context(), acct.Username)
		if err != nil {
			app.sendDomainError(w, err)
			return
		}
		payload["managed_events"] = newEventResponses(events)
	} else {
		events, err := app.events.Attending(r.Context(), acct)
		if err != nil {
			app.sendDomainError(w, err)
			return
		}
		payload["attended_events"] = newEventResponses(events)
	}

	_ = app.SendSuccessJSON(w, http.StatusOK, payload)
}

func (app *application) handleSettingsView(w http.ResponseWriter, r *http.Request) {
	_ = app.SendSuccessJSON(w, http.StatusOK, newAccountResponse(accountFrom(r)))
}

func (app *application) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}

	acct, err := app.accounts.UpdateProfile(r.Context(), accountFrom(r), domain.UpdateProfileInput{
		FirstName:       r.PostFormValue("first_name"),
		LastName:        r.PostFormValue("last_name"),
		Desc:            r.PostFormValue("desc"),
		Hobbies:         r.PostFormValue("hobbies"),
		Age:             r.PostFormValue("age"),
		Username:        r.PostFormValue("username"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	})
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendNoticeJSON(w, http.StatusOK, "Profile updated successfully!", newAccountResponse(acct))
}
