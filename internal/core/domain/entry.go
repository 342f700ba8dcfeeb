package domain

import (
	"errors"
	"strings"
)

// Entry is a single guestbook record. A nil ID marks an entry that has
// not been persisted yet; the store assigns the id on insert.
type Entry struct {
	ID      *int64 `json:"id"`
	User    string `json:"user"`
	Comment string `json:"comment"`
}

var (
	ErrEmptyUser    = errors.New("entry user cannot be empty")
	ErrEmptyComment = errors.New("entry comment cannot be empty")
)

// HasID reports whether the entry carries a persisted id.
func (e Entry) HasID() bool {
	return e.ID != nil
}

// SetID stamps the entry with an id. Used by stores on insert.
func (e *Entry) SetID(id int64) {
	e.ID = &id
}

// Validate checks the non-empty field invariant for user and comment.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.User) == "" {
		return ErrEmptyUser
	}

	if strings.TrimSpace(e.Comment) == "" {
		return ErrEmptyComment
	}

	return nil
}

// Clone returns a copy that shares no memory with the receiver, so
// stores can hand out results without exposing internal state.
func (e Entry) Clone() Entry {
	out := Entry{
		User:    e.User,
		Comment: e.Comment,
	}

	if e.ID != nil {
		id := *e.ID
		out.ID = &id
	}

	return out
}
