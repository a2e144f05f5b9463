package dto

import (
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/view"
)

type MeResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *identity.User `json:"user,omitempty"`
	PrimaryRole   identity.Role  `json:"primaryRole"`
	HomeRoute     string         `json:"homeRoute"`
	Nav           []view.Link    `json:"nav"`
	CanOrder      bool           `json:"canOrder"`
}
