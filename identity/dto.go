package identity

import "github.com/ruralep/platform/pkg/enums"

// RegisterInput carries the registration payload. Admins are seeded, never
// registered, so the role is restricted to the three public roles.
type RegisterInput struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required"`
	Role     enums.UserRole `json:"role" validate:"required,oneof=buyer seller mentor"`
	UPI      string         `json:"upi,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Village  string         `json:"village,omitempty"`
	Category string         `json:"category,omitempty"`
}

// LoginInput carries the credential pair checked against the registry.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfilePatch shallow-merges the provided fields into a user record.
// Nil fields are left untouched. Email and role are immutable.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	UPI      *string `json:"upi,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Village  *string `json:"village,omitempty"`
	Category *string `json:"category,omitempty"`
}
