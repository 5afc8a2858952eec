package employee

import (
	"errors"
	"testing"
	"time"
)

func TestValidateName(t *testing.T) {
	if err := ValidateName("Ana"); err != nil {
		t.Fatalf("ValidateName(\"Ana\"): %v", err)
	}
	if err := ValidateName("   "); !errors.Is(err, ErrMissingField) {
		t.Fatalf("blank name: err = %v, want ErrMissingField", err)
	}
	if err := ValidateName("An4"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("name with digit: err = %v, want ErrInvalidName", err)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  error
	}{
		{"ana@gmail.com", nil},
		{"ana.horvat+payroll@tvz.hr", nil},
		{"", ErrMissingField},
		{"ana@", ErrInvalidEmail},
		{"ana@gmail", ErrInvalidEmail},
		{"@gmail.com", ErrInvalidEmail},
		{"ana gmail.com", ErrInvalidEmail},
	}
	for _, tc := range tests {
		if err := ValidateEmail(tc.email, nil); !errors.Is(err, tc.want) {
			t.Fatalf("ValidateEmail(%q) = %v, want %v", tc.email, err, tc.want)
		}
	}

	taken := func(email string) bool { return email == "ana@gmail.com" }
	if err := ValidateEmail("ana@gmail.com", taken); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("taken email: err = %v, want ErrEmailTaken", err)
	}
	if err := ValidateEmail("ivan@gmail.com", taken); err != nil {
		t.Fatalf("free email rejected: %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Str0ng!pw"); err != nil {
		t.Fatalf("ValidatePassword: %v", err)
	}
	if err := ValidatePassword(""); !errors.Is(err, ErrMissingField) {
		t.Fatalf("empty password: err = %v, want ErrMissingField", err)
	}

	bad := []struct {
		name     string
		password string
	}{
		{"too short", "S0!ab"},
		{"no uppercase", "str0ng!pw"},
		{"no lowercase", "STR0NG!PW"},
		{"no digit", "Strong!pw"},
		{"no special character", "Str0ngpww"},
	}
	for _, tc := range bad {
		if err := ValidatePassword(tc.password); err == nil {
			t.Fatalf("%s: password %q accepted", tc.name, tc.password)
		}
	}
}

func TestValidateDateOfBirth(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	if err := ValidateDateOfBirth(time.Date(2010, time.August, 31, 0, 0, 0, 0, time.UTC), now); err != nil {
		t.Fatalf("sixteenth birthday rejected: %v", err)
	}
	if err := ValidateDateOfBirth(time.Date(2010, time.September, 1, 0, 0, 0, 0, time.UTC), now); !errors.Is(err, ErrUnderage) {
		t.Fatalf("fifteen-year-old: err = %v, want ErrUnderage", err)
	}
	if err := ValidateDateOfBirth(time.Time{}, now); !errors.Is(err, ErrMissingField) {
		t.Fatalf("zero date of birth: err = %v, want ErrMissingField", err)
	}
}

func TestParseRoleAndGender(t *testing.T) {
	if role, err := ParseRole(" admin "); err != nil || role != RoleAdmin {
		t.Fatalf("ParseRole(\" admin \") = %q, %v", role, err)
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("ParseRole(\"root\") err = %v, want ErrUnknownRole", err)
	}
	if gender, err := ParseGender("female"); err != nil || gender != GenderFemale {
		t.Fatalf("ParseGender(\"female\") = %q, %v", gender, err)
	}
	if _, err := ParseGender("other"); !errors.Is(err, ErrUnknownGender) {
		t.Fatalf("ParseGender(\"other\") err = %v, want ErrUnknownGender", err)
	}
}
