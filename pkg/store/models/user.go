package models

import (
	"github.com/ruralep/platform/pkg/enums"
)

// User represents the canonical identity entity. Sellers carry the extra
// storefront fields; buyers and mentors leave them empty.
type User struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	CredentialHash string         `json:"credentialHash"`
	Role           enums.UserRole `json:"role"`
	Approved       bool           `json:"approved"`
	UPI            string         `json:"upi,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	Village        string         `json:"village,omitempty"`
	Category       string         `json:"category,omitempty"`
}
