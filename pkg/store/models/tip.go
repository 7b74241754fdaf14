package models

import "time"

// Tip is bite-sized mentor advice, visible to sellers without moderation.
type Tip struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
