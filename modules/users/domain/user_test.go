package domain

import (
	"strings"
	"testing"
)

func TestNewEmail(t *testing.T) {
	valid := []string{"a@b.co", "Ravi.Kumar@example.com", " padded@example.com "}
	for _, s := range valid {
		if _, err := NewEmail(s); err != nil {
			t.Errorf("NewEmail(%q) unexpected error: %v", s, err)
		}
	}

	invalid := []string{"", "plain", "@example.com", "a@", "a@nodot"}
	for _, s := range invalid {
		if _, err := NewEmail(s); err == nil {
			t.Errorf("NewEmail(%q) expected error", s)
		}
	}

	email, _ := NewEmail("Ravi@Example.COM")
	if email.String() != "ravi@example.com" {
		t.Errorf("email not normalized: %q", email.String())
	}
}

func TestNewName(t *testing.T) {
	if _, err := NewName(""); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := NewName("   "); err == nil {
		t.Error("expected error for whitespace name")
	}
	if _, err := NewName(strings.Repeat("x", 101)); err == nil {
		t.Error("expected error for overlong name")
	}
	name, err := NewName("  Ravi Kumar  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name.String() != "Ravi Kumar" {
		t.Errorf("name not trimmed: %q", name.String())
	}
}

func TestNewUser(t *testing.T) {
	email, _ := NewEmail("ravi@example.com")
	name, _ := NewName("Ravi Kumar")

	user := NewUser(email, name, "9876543210", "42 MG Road")
	if user.ID().IsZero() {
		t.Error("expected generated user ID")
	}
	if user.Email() != email || user.Name() != name {
		t.Error("constructor did not retain fields")
	}

	updated, _ := NewName("Ravi K")
	user.UpdateProfile(updated, "9876543211", "7 Brigade Road")
	if user.Name() != updated || user.Phone() != "9876543211" {
		t.Error("UpdateProfile did not apply")
	}
}
