package contacts

import (
	"errors"
	"regexp"
	"strings"
)

// Contact is a single address-book record.  Email is its identity.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ErrorKind names why Add rejected a contact.
type ErrorKind string

const (
	DuplicateEmail     ErrorKind = "DuplicateEmail"
	InvalidEmailFormat ErrorKind = "InvalidEmailFormat"
	InvalidPhoneFormat ErrorKind = "InvalidPhoneFormat"
	InvalidName        ErrorKind = "InvalidName"
)

var (
	ErrDuplicateEmail     = errors.New("contacts: email already exists")
	ErrInvalidEmailFormat = errors.New("contacts: invalid email format")
	ErrInvalidPhoneFormat = errors.New("contacts: invalid phone format")
	ErrInvalidName        = errors.New("contacts: name is required")
)

var kinds = map[ErrorKind]struct {
	message string
	err     error
}{
	DuplicateEmail:     {"Email already exists", ErrDuplicateEmail},
	InvalidEmailFormat: {"Invalid email format", ErrInvalidEmailFormat},
	InvalidPhoneFormat: {"Invalid phone format - must be 10-13 digits", ErrInvalidPhoneFormat},
	InvalidName:        {"Name is required", ErrInvalidName},
}

// Result is the outcome of Add.  A rejected contact is reported here,
// never through the error return.
type Result struct {
	OK    bool      `json:"ok"`
	Kind  ErrorKind `json:"kind,omitempty"`
	Error string    `json:"error,omitempty"`
}

func failure(kind ErrorKind) Result {
	return Result{Kind: kind, Error: kinds[kind].message}
}

// Err returns nil for a successful result and the sentinel error
// matching Kind otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	if k, ok := kinds[r.Kind]; ok {
		return k.err
	}
	return errors.New("contacts: " + r.Error)
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,13}$`)
)

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidPhone reports whether s is 10 to 13 ASCII digits.
func ValidPhone(s string) bool { return phonePattern.MatchString(s) }

// ValidName reports whether s has at least one non-space character.
func ValidName(s string) bool { return strings.TrimSpace(s) != "" }

// checkFormat applies the format checks in order: email, phone, name.
func checkFormat(c Contact) (ErrorKind, bool) {
	switch {
	case !ValidEmail(c.Email):
		return InvalidEmailFormat, false
	case !ValidPhone(c.Phone):
		return InvalidPhoneFormat, false
	case !ValidName(c.Name):
		return InvalidName, false
	}
	return "", true
}
