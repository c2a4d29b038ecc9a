package env

import (
	"os"
	"strings"
	"time"
)

// DefaultEmail is the active user reported when none is configured.
const DefaultEmail = "test@example.com"

// Session describes who is running and in which time zone.
type Session struct {
	Email    string
	TimeZone string
}

// NewSession returns a session for email. The time zone comes from the TZ
// environment variable, falling back to UTC.
func NewSession(email string) Session {
	if email == "" {
		email = DefaultEmail
	}
	tz := strings.TrimPrefix(os.Getenv("TZ"), ":")
	if _, err := time.LoadLocation(tz); tz == "" || err != nil {
		tz = "UTC"
	}
	return Session{Email: email, TimeZone: tz}
}

// ActiveUserEmail returns the email of the active user.
func (s Session) ActiveUserEmail() string {
	return s.Email
}

// ScriptTimeZone returns the IANA name of the session time zone.
func (s Session) ScriptTimeZone() string {
	return s.TimeZone
}
