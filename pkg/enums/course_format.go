package enums

import "fmt"

// CourseFormat describes the delivery medium of a mentor course.
type CourseFormat string

const (
	CourseFormatVideo   CourseFormat = "video"
	CourseFormatPDF     CourseFormat = "pdf"
	CourseFormatArticle CourseFormat = "article"
)

var validCourseFormats = []CourseFormat{
	CourseFormatVideo,
	CourseFormatPDF,
	CourseFormatArticle,
}

// String implements fmt.Stringer.
func (c CourseFormat) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CourseFormat.
func (c CourseFormat) IsValid() bool {
	for _, candidate := range validCourseFormats {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCourseFormat converts raw input into a CourseFormat.
func ParseCourseFormat(value string) (CourseFormat, error) {
	for _, candidate := range validCourseFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid course format %q", value)
}
