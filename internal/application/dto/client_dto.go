package dto

import "time"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Identification string `json:"identification" validate:"required,max=20"`
	Name           string `json:"name" validate:"required,max=150"`
	Stratum        int    `json:"stratum" validate:"required,min=1,max=6"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty" validate:"max=30"`
	Address        string `json:"address,omitempty" validate:"max=250"`
}

// UpdateClientRequest campos modificables de un cliente.
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=150"`
	Stratum *int    `json:"stratum" validate:"omitempty,min=1,max=6"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address" validate:"omitempty,max=250"`
	Status  *string `json:"status" validate:"omitempty,oneof=activo suspendido cancelado"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID             string    `json:"id"`
	Identification string    `json:"identification"`
	Name           string    `json:"name"`
	Stratum        int       `json:"stratum"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
