package catalog

import (
	"github.com/ruralep/platform/pkg/enums"
	"github.com/shopspring/decimal"
)

// ProductInput is a seller's listing submission. Price positivity is checked
// in the service since the validator does not see into decimal values.
type ProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	Image       string          `json:"image,omitempty" validate:"omitempty,url"`
	Description string          `json:"desc,omitempty"`
}

// ProductPatch shallow-merges into an existing listing. Nil fields are left
// untouched. Ownership and approval state are not patchable.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Description *string          `json:"desc,omitempty"`
}

// CourseInput is a mentor's lesson submission.
type CourseInput struct {
	Title   string             `json:"title" validate:"required"`
	Level   enums.CourseLevel  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Format  enums.CourseFormat `json:"format" validate:"required,oneof=video pdf article"`
	URL     string             `json:"url" validate:"required,url"`
	Summary string             `json:"summary,omitempty"`
}

// CoursePatch shallow-merges into an existing course.
type CoursePatch struct {
	Title   *string             `json:"title,omitempty"`
	Level   *enums.CourseLevel  `json:"level,omitempty"`
	Format  *enums.CourseFormat `json:"format,omitempty"`
	URL     *string             `json:"url,omitempty"`
	Summary *string             `json:"summary,omitempty"`
}
