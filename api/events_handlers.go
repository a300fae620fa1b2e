package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"event-signup/data/models"
	"event-signup/domain"
)

// eventResponse is the outward shape of an event. The attendee list is only
// present when the viewer is the event's organizer; everyone else sees the
// count.
type eventResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"event_name"`
	EventType     string           `json:"event_type,omitempty"`
	Organizer     string           `json:"organizer"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	Location      string           `json:"location"`
	Description   string           `json:"description"`
	Tags          models.StringSet `json:"tags"`
	AttendeeCount int              `json:"attendee_count"`
	Attendees     models.StringSet `json:"attendees,omitempty"`
}

func newEventResponse(e *models.Event, viewer *models.Account) eventResponse {
	resp := eventResponse{
		ID:            e.ID,
		Name:          e.Name,
		EventType:     e.EventType,
		Organizer:     e.Organizer,
		Date:          e.Date,
		Time:          e.Time,
		Location:      e.Location,
		Description:   e.Description,
		Tags:          e.Tags,
		AttendeeCount: len(e.Attendees),
	}
	if viewer != nil && viewer.Username == e.Organizer {
		resp.Attendees = e.Attendees
	}
	return resp
}

func newEventResponses(events []models.Event) []eventResponse {
	resps := make([]eventResponse, len(events))
	for i := range events {
		resps[i] = newEventResponse(&events[i], nil)
	}
	return resps
}

func (app *application) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}

	acct := accountFrom(r)
	event, err := app.events.Create(r.Context(), eventInputFromForm(r), acct)
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendNoticeJSON(w, http.StatusCreated,
		fmt.Sprintf("%s has been created.", event.Name), newEventResponse(event, acct))
}

func (app *application) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	event, err := app.events.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendSuccessJSON(w, http.StatusOK, newEventResponse(event, accountFrom(r)), "event")
}

// handleEditEventView returns the event for its edit form; only the owning
// organizer gets it.
func (app *application) handleEditEventView(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)
	event, err := app.events.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		app.sendDomainError(w, err)
		return
	}
	if event.Organizer != acct.Username {
		app.sendDomainError(w, domain.ErrPermissionDenied)
		return
	}

	_ = app.SendSuccessJSON(w, http.StatusOK, newEventResponse(event, acct), "event")
}

func (app *application) handleEditEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}

	acct := accountFrom(r)
	event, err := app.events.Update(r.Context(), r.PathValue("id"), eventInputFromForm(r), acct)
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendNoticeJSON(w, http.StatusOK,
		fmt.Sprintf("%s has been updated successfully.", event.Name), newEventResponse(event, acct))
}

func (app *application) handleCancelEvent(w http.ResponseWriter, r *http.Request) {
	event, err := app.events.Cancel(r.Context(), r.PathValue("id"), accountFrom(r))
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendNoticeJSON(w, http.StatusOK, fmt.Sprintf("%s has been canceled.", event.Name), nil)
}

func (app *application) handleEventSignup(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)
	event, err := app.events.Signup(r.Context(), r.PathValue("id"), acct)
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendNoticeJSON(w, http.StatusOK,
		fmt.Sprintf("You have successfully signed up for %s!", event.Name), newEventResponse(event, acct))
}

func (app *application) handleEventDecline(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)
	event, err := app.events.Decline(r.Context(), r.PathValue("id"), acct)
	if err != nil {
		app.sendDomainError(w, err)
		return
	}

	_ = app.SendNoticeJSON(w, http.StatusOK,
		fmt.Sprintf("You have successfully declined %s.", event.Name), newEventResponse(event, acct))
}

func eventInputFromForm(r *http.Request) domain.EventInput {
	return domain.EventInput{
		Name:        r.PostFormValue("event_name"),
		EventType:   r.PostFormValue("event_type"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
		Time:        r.PostFormValue("time"),
		Location:    r.PostFormValue("location"),
		Tags:        splitTags(r.PostFormValue("tags")),
	}
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func filterEventsByName(events []models.Event, search string) []models.Event {
	needle := strings.ToLower(search)
	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
