// Package validator holds the pure field checks run before anything
// touches persistence. Every check either returns a normalized value
// or a FieldError naming the offending field; checks are synchronous
// and never reach the database (uniqueness is the caller's problem).
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// Requires a local part, a domain, and a TLD. Deliberately stricter
// than RFC 5322: "a@b" without a dot is rejected.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const dateLayout = "2006-01-02"

// Email trims and lower-cases the address, returning the normalized
// form used for storage and comparison.
func Email(raw string) (string, *FieldError) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", &FieldError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return "", &FieldError{Field: "email", Message: "invalid email address"}
	}
	return email, nil
}

func Password(raw string) *FieldError {
	if raw == "" {
		return &FieldError{Field: "password", Message: "password is required"}
	}
	if len(raw) < 6 {
		return &FieldError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// Date parses a YYYY-MM-DD value for the named field.
func Date(field, raw string) (time.Time, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, &FieldError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Message: fmt.Sprintf("%s must be a valid YYYY-MM-DD date", field)}
	}
	return date, nil
}

// Birthdate parses a YYYY-MM-DD date and rejects anything in the
// future. Today is accepted.
func Birthdate(raw string) (time.Time, *FieldError) {
	date, ferr := Date("birthdate", raw)
	if ferr != nil {
		return time.Time{}, ferr
	}
	if date.After(time.Now()) {
		return time.Time{}, &FieldError{Field: "birthdate", Message: "birthdate cannot be in the future"}
	}
	return date, nil
}

type Field struct {
	Name  string
	Value string
}

// Required reports the first missing/empty field in declaration
// order, so the error a client sees is deterministic.
func Required(fields ...Field) *FieldError {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return &FieldError{Field: f.Name, Message: fmt.Sprintf("%s is required", f.Name)}
		}
	}
	return nil
}
