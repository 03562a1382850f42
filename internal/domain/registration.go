package domain

import (
	"regexp"
	"strings"
	"time"
)

// Gender is the self-declared gender on a registration form.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
)

// Valid reports whether g is one of the offered options.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

// TicketType is the pass purchased at registration.
type TicketType string

const (
	TicketGeneral   TicketType = "general"
	TicketVIP       TicketType = "vip"
	TicketStudent   TicketType = "student"
	TicketCorporate TicketType = "corporate"
)

func (t TicketType) Valid() bool {
	switch t {
	case TicketGeneral, TicketVIP, TicketStudent, TicketCorporate:
		return true
	}
	return false
}

// Label is the display name of the ticket.
func (t TicketType) Label() string {
	switch t {
	case TicketGeneral:
		return "General Admission"
	case TicketVIP:
		return "VIP Pass"
	case TicketStudent:
		return "Student Pass"
	case TicketCorporate:
		return "Corporate Package"
	}
	return string(t)
}

// RegistrationStatus is toggled by admins.
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusBlocked    RegistrationStatus = "blocked"
)

func (s RegistrationStatus) Valid() bool {
	return s == StatusRegistered || s == StatusBlocked
}

// Toggled flips between registered and blocked.
func (s RegistrationStatus) Toggled() RegistrationStatus {
	if s == StatusBlocked {
		return StatusRegistered
	}
	return StatusBlocked
}

// Registration is one attendee sign-up. IDs grow with insertion order and
// records are never deleted.
type Registration struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Gender     Gender             `json:"gender"`
	TicketType TicketType         `json:"ticketType"`
	Status     RegistrationStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	LastLogin  *time.Time         `json:"lastLogin"`
}

// RegistrationInput carries the registration form fields.
type RegistrationInput struct {
	Name       string
	Email      string
	Phone      string
	Gender     Gender
	TicketType TicketType
}

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// ValidEmail reports whether email has a basic local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate returns field-keyed messages, empty when the input is acceptable.
func (in RegistrationInput) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Full name is required"
	}

	switch {
	case strings.TrimSpace(in.Email) == "":
		errs["email"] = "Email is required"
	case !ValidEmail(in.Email):
		errs["email"] = "Email is invalid"
	}

	switch {
	case strings.TrimSpace(in.Phone) == "":
		errs["phone"] = "Phone number is required"
	case !phonePattern.MatchString(in.Phone):
		errs["phone"] = "Phone number must be 10 digits"
	}

	if !in.Gender.Valid() {
		errs["gender"] = "Please select gender"
	}
	if !in.TicketType.Valid() {
		errs["ticketType"] = "Please select ticket type"
	}

	return errs
}
