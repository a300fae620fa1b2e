package models

// Event is a scheduled event owned by an organizer account. The ID is
// assigned by the storage backend on first save and never reused, even
// after the event is deleted.
type Event struct {
	ID          string    `json:"id" db:"id" readOnly:"true"`
	Name        string    `validate:"required,max=120" json:"event_name" db:"name"`
	EventType   string    `json:"event_type" db:"event_type"`
	Organizer   string    `validate:"required" json:"organizer" db:"organizer"`
	Date        string    `validate:"required" json:"date" db:"event_date"`
	Time        string    `validate:"required" json:"time" db:"event_time"`
	Location    string    `validate:"required" json:"location" db:"location"`
	Description string    `validate:"required" json:"description" db:"description"`
	Tags        StringSet `json:"tags" db:"tags"`
	Attendees   StringSet `json:"attendees" db:"attendees"`
}

func (Event) CollectionName() string {
	return "events"
}

func (e Event) Key() string {
	return e.ID
}

func (e *Event) SetKey(key string) {
	e.ID = key
}
