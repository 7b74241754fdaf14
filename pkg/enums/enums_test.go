package enums

import "testing"

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("seller")
	if err != nil {
		t.Fatalf("parse seller: %v", err)
	}
	if role != UserRoleSeller {
		t.Fatalf("expected seller, got %s", role)
	}
	if _, err := ParseUserRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestOrderStatusValidation(t *testing.T) {
	for _, status := range validOrderStatuses {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if OrderStatus("returned").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestCourseLevelAndFormat(t *testing.T) {
	if !CourseLevelBeginner.IsValid() {
		t.Fatal("expected Beginner to be valid")
	}
	if CourseLevel("beginner").IsValid() {
		t.Fatal("levels are case sensitive, lowercase should be invalid")
	}
	if _, err := ParseCourseFormat("video"); err != nil {
		t.Fatalf("parse video: %v", err)
	}
	if _, err := ParseCourseFormat("podcast"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
