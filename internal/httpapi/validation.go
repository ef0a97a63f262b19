package httpapi

import (
	"regexp"
	"strings"
)

// Credentials are transient: validated, sent upstream, never persisted.
type Credentials struct {
	Email    string
	Password string
}

// FieldErrors maps field name to a user-facing message.
type FieldErrors map[string]string

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateCredentials checks the sign-in form before anything touches the
// network. Returns the normalized credentials on success, or a non-nil error
// map naming every failing field.
func ValidateCredentials(email, password string) (Credentials, FieldErrors) {
	errs := FieldErrors{}

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs["email"] = "email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "invalid email"
	}

	if password == "" {
		errs["password"] = "password is required"
	}

	if len(errs) > 0 {
		return Credentials{}, errs
	}
	return Credentials{Email: email, Password: password}, nil
}
