package cloudconfig

import (
	"errors"
	"fmt"
)

// ErrUnknownSessionKey is returned when a value is stored under a key
// outside the documented set.
var ErrUnknownSessionKey = errors.New("unknown session key")

// SessionKey names a value shared between directives.
type SessionKey int

// Session keys.
const (
	// KeyUsername is the account the users directive provisioned.
	KeyUsername SessionKey = iota + 1
	// KeyPassword is the password created for KeyUsername during this run.
	KeyPassword
	// KeyPasswordPosted is set once the password reached the metadata service.
	KeyPasswordPosted
)

func (k SessionKey) String() string {
	switch k {
	case KeyUsername:
		return "username"
	case KeyPassword:
		return "password"
	case KeyPasswordPosted:
		return "password_posted"
	default:
		return fmt.Sprintf("SessionKey(%d)", int(k))
	}
}

func (k SessionKey) valid() bool {
	return k >= KeyUsername && k <= KeyPasswordPosted
}

// Session is the state shared by the directives of one run.
// It is not safe for concurrent use; directives run sequentially.
type Session struct {
	values map[SessionKey]string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{values: make(map[SessionKey]string)}
}

// Set stores value under key.
func (s *Session) Set(key SessionKey, value string) error {
	if !key.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownSessionKey, key)
	}
	s.values[key] = value
	return nil
}

// Get returns the value stored under key.
func (s *Session) Get(key SessionKey) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Destroy drops every value. The session is empty afterwards.
func (s *Session) Destroy() {
	for k := range s.values {
		delete(s.values, k)
	}
}
