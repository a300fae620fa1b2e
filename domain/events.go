package domain

import (
	"context"
	"time"

	"event-signup/data/models"
	"event-signup/data/repository"
)

type EventService struct {
	repo repository.Repo
}

func NewEventService(repo repository.Repo) *EventService {
	return &EventService{repo: repo}
}

type EventInput struct {
	Name        string
	EventType   string
	Description string
	Date        string
	Time        string
	Location    string
	Tags        []string
}

func (in EventInput) missingField() string {
	switch {
	case in.Name == "":
		return "event_name"
	case in.Description == "":
		return "description"
	case in.Date == "":
		return "date"
	case in.Time == "":
		return "time"
	case in.Location == "":
		return "location"
	}
	return ""
}

// Create stores a new event owned by the acting account, which must be an
// organizer. Name, description, date, time and location are all required.
func (s *EventService) Create(ctx context.Context, in EventInput, organizer *models.Account) (*models.Event, error) {
	if !organizer.IsOrganizer {
		return nil, ErrPermissionDenied
	}
	if field := in.missingField(); field != "" {
		return nil, validationErr("%s is required", field)
	}

	event := &models.Event{
		Name:        in.Name,
		EventType:   in.EventType,
		Organizer:   organizer.Username,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Description: in.Description,
		Tags:        models.NewStringSet(in.Tags...),
	}

	if err := s.repo.PutEvent(ctx, event); err != nil {
		return nil, putErr(err)
	}
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

// Update edits an event in place. Only the owning organizer may edit, and
// the same fields are required as on create. Attendees are untouched.
func (s *EventService) Update(ctx context.Context, id string, in EventInput, actor *models.Account) (*models.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Organizer != actor.Username {
		return nil, ErrPermissionDenied
	}
	if field := in.missingField(); field != "" {
		return nil, validationErr("%s is required", field)
	}

	event.Name = in.Name
	event.EventType = in.EventType
	event.Date = in.Date
	event.Time = in.Time
	event.Location = in.Location
	event.Description = in.Description
	event.Tags = models.NewStringSet(in.Tags...)

	if err := s.repo.PutEvent(ctx, event); err != nil {
		return nil, putErr(err)
	}
	return event, nil
}

// Signup adds the account to the event's attendees and mirrors the event
// key into the account's attendance. A second signup is ErrAlreadySignedUp
// and leaves the attendee set unchanged.
func (s *EventService) Signup(ctx context.Context, id string, acct *models.Account) (*models.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Attendees.Has(acct.Username) {
		return event, ErrAlreadySignedUp
	}

	event.Attendees.Add(acct.Username)
	if err := s.repo.PutEvent(ctx, event); err != nil {
		return nil, putErr(err)
	}

	acct.EventAttendance.Add(event.ID)
	if err := s.repo.PutAccount(ctx, acct); err != nil {
		return nil, putErr(err)
	}
	return event, nil
}

// Decline removes the account from the event's attendees. Declining an
// event the account never signed up for is ErrNotSignedUp.
func (s *EventService) Decline(ctx context.Context, id string, acct *models.Account) (*models.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Attendees.Remove(acct.Username) {
		return event, ErrNotSignedUp
	}

	if err := s.repo.PutEvent(ctx, event); err != nil {
		return nil, putErr(err)
	}

	acct.EventAttendance.Remove(event.ID)
	if err := s.repo.PutAccount(ctx, acct); err != nil {
		return nil, putErr(err)
	}
	return event, nil
}

// Cancel deletes the event. Only the owning organizer may cancel.
func (s *EventService) Cancel(ctx context.Context, id string, actor *models.Account) (*models.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Organizer != actor.Username {
		return nil, ErrPermissionDenied
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return nil, err
	}
	return event, nil
}

// Search matches a case-insensitive substring of the event name.
func (s *EventService) Search(ctx context.Context, query string) ([]models.Event, error) {
	return s.repo.SearchEvents(ctx, query)
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *EventService) ByOrganizer(ctx context.Context, username string) ([]models.Event, error) {
	return s.repo.EventsByOrganizer(ctx, username)
}

func (s *EventService) Upcoming(ctx context.Context, from time.Time) ([]models.Event, error) {
	return s.repo.UpcomingEvents(ctx, from)
}

// Attending resolves the events behind an account's attendance set. Keys of
// events that were cancelled since signup are skipped.
func (s *EventService) Attending(ctx context.Context, acct *models.Account) ([]models.Event, error) {
	events := make([]models.Event, 0, len(acct.EventAttendance))
	for _, id := range acct.EventAttendance {
		event, err := s.repo.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		if event != nil {
			events = append(events, *event)
		}
	}
	return events, nil
}
