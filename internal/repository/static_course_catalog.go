package repository

import (
	"context"
	"sort"

	"training-quiz/internal/domain"
)

// StaticCourseCatalog serves a fixed, pre-validated course list from memory.
type StaticCourseCatalog struct {
	courses []*domain.Course
	byID    map[string]*domain.Course
}

// NewStaticCourseCatalog validates every course up front.
func NewStaticCourseCatalog(courses []*domain.Course) (*StaticCourseCatalog, error) {
	c := &StaticCourseCatalog{byID: make(map[string]*domain.Course, len(courses))}
	for _, course := range courses {
		if err := course.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[course.ID]; dup {
			return nil, domain.NewInvalidInputError("duplicate course id " + course.ID)
		}
		c.byID[course.ID] = course
	}
	c.courses = make([]*domain.Course, len(courses))
	copy(c.courses, courses)
	sort.Slice(c.courses, func(i, j int) bool { return c.courses[i].ID < c.courses[j].ID })
	return c, nil
}

// ListCourses implements domain.CourseCatalog.
func (c *StaticCourseCatalog) ListCourses(_ context.Context) ([]*domain.Course, error) {
	out := make([]*domain.Course, len(c.courses))
	copy(out, c.courses)
	return out, nil
}

// GetCourse implements domain.CourseCatalog.
func (c *StaticCourseCatalog) GetCourse(_ context.Context, courseID string) (*domain.Course, error) {
	course, ok := c.byID[courseID]
	if !ok {
		return nil, domain.NewCourseNotFoundError(courseID)
	}
	return course, nil
}
