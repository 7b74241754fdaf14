package models

// Session is the single currently-authenticated user pointer. It is not a
// token and never expires; only logout or invalid-reference detection
// clears it.
type Session struct {
	ID string `json:"id"`
}
