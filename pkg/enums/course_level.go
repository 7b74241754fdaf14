package enums

import "fmt"

// CourseLevel describes the difficulty of a mentor course.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "Beginner"
	CourseLevelIntermediate CourseLevel = "Intermediate"
	CourseLevelAdvanced     CourseLevel = "Advanced"
)

var validCourseLevels = []CourseLevel{
	CourseLevelBeginner,
	CourseLevelIntermediate,
	CourseLevelAdvanced,
}

// String implements fmt.Stringer.
func (c CourseLevel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CourseLevel.
func (c CourseLevel) IsValid() bool {
	for _, candidate := range validCourseLevels {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCourseLevel converts raw input into a CourseLevel.
func ParseCourseLevel(value string) (CourseLevel, error) {
	for _, candidate := range validCourseLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid course level %q", value)
}
