package models

// Account is a registered user. The username doubles as the storage key and
// is immutable once the account exists; every event reference to a user
// (organizer, attendees) is a username.
type Account struct {
	Username        string    `validate:"required,min=3,max=40" json:"username" db:"username"`
	PasswordHash    string    `validate:"required" json:"password_hash" db:"password_hash"`
	FirstName       string    `json:"first_name" db:"first_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	Desc            string    `json:"desc" db:"about"`
	Hobbies         string    `json:"hobbies" db:"hobbies"`
	Age             string    `json:"age" db:"age"`
	IsOrganizer     bool      `json:"is_organizer" db:"is_organizer"`
	EventAttendance StringSet `json:"event_attendance" db:"event_attendance"`
}

func (Account) CollectionName() string {
	return "accounts"
}

func (a Account) Key() string {
	return a.Username
}

func (a *Account) SetKey(key string) {
	a.Username = key
}
