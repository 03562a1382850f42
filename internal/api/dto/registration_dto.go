package dto

import (
	"time"

	"github.com/spec-kit/eventhub/internal/domain"
)

// RegistrationRequest payload for the public registration form.
type RegistrationRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	TicketType string `json:"ticketType"`
}

// Input converts the payload for the repository.
func (r RegistrationRequest) Input() domain.RegistrationInput {
	return domain.RegistrationInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Gender:     domain.Gender(r.Gender),
		TicketType: domain.TicketType(r.TicketType),
	}
}

// RegistrationResponse is a registration as rendered by the API.
type RegistrationResponse struct {
	ID          int64                     `json:"id"`
	Name        string                    `json:"name"`
	Email       string                    `json:"email"`
	Phone       string                    `json:"phone"`
	Gender      domain.Gender             `json:"gender"`
	TicketType  domain.TicketType         `json:"ticketType"`
	TicketLabel string                    `json:"ticketLabel"`
	Status      domain.RegistrationStatus `json:"status"`
	CreatedAt   time.Time                 `json:"createdAt"`
	LastLogin   *time.Time                `json:"lastLogin"`
}

// NewRegistrationResponse maps a domain registration.
func NewRegistrationResponse(reg *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:          reg.ID,
		Name:        reg.Name,
		Email:       reg.Email,
		Phone:       reg.Phone,
		Gender:      reg.Gender,
		TicketType:  reg.TicketType,
		TicketLabel: reg.TicketType.Label(),
		Status:      reg.Status,
		CreatedAt:   reg.CreatedAt,
		LastLogin:   reg.LastLogin,
	}
}
