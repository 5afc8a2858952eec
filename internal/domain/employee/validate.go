package employee

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrMissingField  = errors.New("all fields must be filled")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmailTaken    = errors.New("that email is already in use")
	ErrUnderage      = errors.New("employee must be at least 16 years old")
	ErrInvalidName   = errors.New("name must not contain digits")
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownGender = errors.New("unknown gender")
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	digitPattern = regexp.MustCompile(`\d`)
)

// passwordRules are checked in order; the first failing rule is reported.
var passwordRules = []struct {
	ok     func(string) bool
	reason string
}{
	{func(p string) bool { return len(p) >= 8 }, "password must be at least 8 characters long"},
	{func(p string) bool { return strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") }, "password must contain at least one uppercase letter"},
	{func(p string) bool { return strings.ContainsAny(p, "abcdefghijklmnopqrstuvwxyz") }, "password must contain at least one lowercase letter"},
	{func(p string) bool { return strings.ContainsAny(p, "0123456789") }, "password must contain at least one digit"},
	{func(p string) bool { return strings.ContainsAny(p, "@#$%^&+=!€") }, "password must contain at least one special character (@#$%^&+=!€)"},
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingField
	}
	if digitPattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// ValidateEmail checks shape and uniqueness. The taken lookup may be nil
// when uniqueness is enforced elsewhere.
func ValidateEmail(email string, taken func(string) bool) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingField
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if taken != nil && taken(email) {
		return ErrEmailTaken
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return ErrMissingField
	}
	for _, rule := range passwordRules {
		if !rule.ok(password) {
			return fmt.Errorf("invalid password: %s", rule.reason)
		}
	}
	return nil
}

func ValidateDateOfBirth(dateOfBirth time.Time, now time.Time) error {
	if dateOfBirth.IsZero() {
		return ErrMissingField
	}
	cutoff := now.AddDate(-16, 0, 0)
	if dateOfBirth.After(cutoff) {
		return ErrUnderage
	}
	return nil
}

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", ErrUnknownRole
}

func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	}
	return "", ErrUnknownGender
}
