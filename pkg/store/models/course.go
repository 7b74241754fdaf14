package models

import (
	"github.com/ruralep/platform/pkg/enums"
)

// Course is a mentor lesson, gated by the same admin approval as products.
type Course struct {
	ID       string             `json:"id"`
	MentorID string             `json:"mentorId"`
	Title    string             `json:"title"`
	Level    enums.CourseLevel  `json:"level"`
	Format   enums.CourseFormat `json:"format"`
	URL      string             `json:"url"`
	Summary  string             `json:"summary,omitempty"`
	Approved bool               `json:"approved"`
}
