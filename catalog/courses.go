package catalog

import (
	"context"

	"github.com/ruralep/platform/pkg/enums"
	pkgerrors "github.com/ruralep/platform/pkg/errors"
	"github.com/ruralep/platform/pkg/ids"
	"github.com/ruralep/platform/pkg/logger"
	"github.com/ruralep/platform/pkg/metrics"
	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
	"github.com/ruralep/platform/pkg/validate"
)

const courseComponent = "catalog_courses"

// CourseService manages mentor lessons. Rejection is softer than for
// products: a course is returned to the pending queue, never deleted by
// the moderation flow.
type CourseService interface {
	Submit(ctx context.Context, actorID string, input CourseInput) (*models.Course, error)
	Approve(ctx context.Context, actorID, courseID string) error
	ReturnToPending(ctx context.Context, actorID, courseID string) error
	Patch(ctx context.Context, actorID, courseID string, patch CoursePatch) (*models.Course, error)
	Remove(ctx context.Context, actorID, courseID string) error
	Visible(ctx context.Context) ([]models.Course, error)
	ByMentor(ctx context.Context, mentorID string) ([]models.Course, error)
}

// CourseServiceParams bundles the dependencies required to build the service.
type CourseServiceParams struct {
	Store   *store.Client
	Logger  *logger.Logger
	Metrics *metrics.Operations
	IDs     ids.Generator
}

type courseService struct {
	store   *store.Client
	logg    *logger.Logger
	metrics *metrics.Operations
	ids     ids.Generator
}

// NewCourseService constructs the course service.
func NewCourseService(params CourseServiceParams) (CourseService, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store client required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.IDs == nil {
		params.IDs = ids.UUIDGenerator{}
	}
	return &courseService{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		ids:     params.IDs,
	}, nil
}

// Submit creates an unapproved course owned by the acting mentor.
func (s *courseService) Submit(ctx context.Context, actorID string, input CourseInput) (*models.Course, error) {
	if err := validate.Struct(input); err != nil {
		s.metrics.IncFailure(courseComponent, "submit")
		return nil, err
	}

	var created models.Course
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		mentor, err := requireApproved(ctx, tx, actorID, enums.UserRoleMentor)
		if err != nil {
			return err
		}
		repo := NewRepository(tx)
		courses, err := repo.Courses(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courses")
		}
		created = models.Course{
			ID:       s.ids.New(ids.PrefixCourse),
			MentorID: mentor.ID,
			Title:    input.Title,
			Level:    input.Level,
			Format:   input.Format,
			URL:      input.URL,
			Summary:  input.Summary,
			Approved: false,
		}
		if err := repo.SaveCourses(ctx, append(courses, created)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save courses")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(courseComponent, "submit")
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"course_id": created.ID, "mentor_id": created.MentorID}), "course submitted for review")
	s.metrics.IncSuccess(courseComponent, "submit")
	return &created, nil
}

// Approve publishes a pending course. Admin only.
func (s *courseService) Approve(ctx context.Context, actorID, courseID string) error {
	return s.moderate(ctx, "approve", actorID, courseID, func(course *models.Course) {
		course.Approved = true
	})
}

// ReturnToPending pulls a course back into the review queue. Admin only.
func (s *courseService) ReturnToPending(ctx context.Context, actorID, courseID string) error {
	return s.moderate(ctx, "return_to_pending", actorID, courseID, func(course *models.Course) {
		course.Approved = false
	})
}

func (s *courseService) moderate(ctx context.Context, op, actorID, courseID string, apply func(*models.Course)) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		if err := requireAdmin(ctx, tx, actorID); err != nil {
			return err
		}
		repo := NewRepository(tx)
		courses, err := repo.Courses(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courses")
		}
		course, _ := findCourse(courses, courseID)
		if course == nil {
			s.logg.Warn(s.logg.WithField(ctx, "course_id", courseID), "course moderation target missing, no-op")
			return nil
		}
		apply(course)
		if err := repo.SaveCourses(ctx, courses); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save courses")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(courseComponent, op)
		return err
	}
	s.metrics.IncSuccess(courseComponent, op)
	return nil
}

// Patch shallow-merges the provided fields. Owner or admin.
func (s *courseService) Patch(ctx context.Context, actorID, courseID string, patch CoursePatch) (*models.Course, error) {
	var updated *models.Course
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		courses, err := repo.Courses(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courses")
		}
		course, idx := findCourse(courses, courseID)
		if course == nil {
			s.logg.Warn(s.logg.WithField(ctx, "course_id", courseID), "course patch target missing, no-op")
			return nil
		}
		if err := requireOwnerOrAdmin(ctx, tx, actorID, course.MentorID); err != nil {
			return err
		}
		applyCoursePatch(course, patch)
		if err := repo.SaveCourses(ctx, courses); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save courses")
		}
		copied := courses[idx]
		updated = &copied
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(courseComponent, "patch")
		return nil, err
	}
	s.metrics.IncSuccess(courseComponent, "patch")
	return updated, nil
}

// Remove deletes a course. Owner or admin.
func (s *courseService) Remove(ctx context.Context, actorID, courseID string) error {
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		repo := NewRepository(tx)
		courses, err := repo.Courses(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courses")
		}
		course, idx := findCourse(courses, courseID)
		if course == nil {
			s.logg.Warn(s.logg.WithField(ctx, "course_id", courseID), "course removal target missing, no-op")
			return nil
		}
		if err := requireOwnerOrAdmin(ctx, tx, actorID, course.MentorID); err != nil {
			return err
		}
		if err := repo.SaveCourses(ctx, append(courses[:idx], courses[idx+1:]...)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save courses")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(courseComponent, "remove")
		return err
	}
	s.metrics.IncSuccess(courseComponent, "remove")
	return nil
}

// Visible lists approved courses.
func (s *courseService) Visible(ctx context.Context) ([]models.Course, error) {
	courses, err := NewRepository(s.store).Courses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courses")
	}
	visible := []models.Course{}
	for _, course := range courses {
		if course.Approved {
			visible = append(visible, course)
		}
	}
	return visible, nil
}

// ByMentor lists a mentor's own courses regardless of moderation state.
func (s *courseService) ByMentor(ctx context.Context, mentorID string) ([]models.Course, error) {
	courses, err := NewRepository(s.store).Courses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courses")
	}
	owned := []models.Course{}
	for _, course := range courses {
		if course.MentorID == mentorID {
			owned = append(owned, course)
		}
	}
	return owned, nil
}

func applyCoursePatch(course *models.Course, patch CoursePatch) {
	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Level != nil {
		course.Level = *patch.Level
	}
	if patch.Format != nil {
		course.Format = *patch.Format
	}
	if patch.URL != nil {
		course.URL = *patch.URL
	}
	if patch.Summary != nil {
		course.Summary = *patch.Summary
	}
}
