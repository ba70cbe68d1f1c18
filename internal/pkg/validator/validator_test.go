package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidWallClock(t *testing.T) {
	valid := []string{"09:00", "9:00", "17:30", "00:00", "23:59"}
	invalid := []string{"24:00", "12:60", "9", "9:0", "09-00", "", "nine"}
	for _, s := range valid {
		if !IsValidWallClock(s) {
			t.Errorf("IsValidWallClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidWallClock(s) {
			t.Errorf("IsValidWallClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidCoordinates(t *testing.T) {
	if !IsValidLatitude(30.0444) || !IsValidLongitude(31.2357) {
		t.Error("Cairo coordinates should be valid")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-90.1) {
		t.Error("latitude outside [-90, 90] should be invalid")
	}
	if IsValidLongitude(180.1) || IsValidLongitude(-180.1) {
		t.Error("longitude outside [-180, 180] should be invalid")
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"ahmed.m", "fatima_z", "user-123"}
	invalid := []string{"ab", "", "has space", "weird!char"}
	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = true, want false", u)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-06-01"); !ok {
		t.Error("expected 2024-06-01 to parse")
	}
	if _, ok := IsValidDate("01-06-2024"); ok {
		t.Error("expected 01-06-2024 to fail")
	}
}
