package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSet is an insertion-ordered set of strings. It is used for event
// tags, event attendees and an account's event attendance, where membership
// must be unique but ordering should stay stable for display. It serializes
// as a JSON array and round-trips through a JSONB column.
type StringSet []string

// NewStringSet builds a set from the given members, dropping duplicates and
// empty strings.
func NewStringSet(members ...string) StringSet {
	var s StringSet
	for _, m := range members {
		if m == "" {
			continue
		}
		s.Add(m)
	}
	return s
}

// Has reports whether member is in the set.
func (s StringSet) Has(member string) bool {
	for _, m := range s {
		if m == member {
			return true
		}
	}
	return false
}

// Add appends member unless it is already present.
func (s *StringSet) Add(member string) {
	if s.Has(member) {
		return
	}
	*s = append(*s, member)
}

// Remove deletes member, preserving the order of the remaining members. It
// reports whether the member was present.
func (s *StringSet) Remove(member string) bool {
	for i, m := range *s {
		if m == member {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Value implements driver.Valuer so a StringSet can be written straight to a
// JSONB column by the generic record helpers.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner for the JSONB representation.
func (s *StringSet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	default:
		return fmt.Errorf("cannot scan %T into StringSet", src)
	}
}
