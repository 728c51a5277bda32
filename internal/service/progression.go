package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"training-quiz/internal/domain"
	"training-quiz/internal/logger"

	"go.uber.org/zap"
)

// ProgressionController drives enrollment and the per-course level state machine.
type ProgressionController interface {
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	Enroll(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error)
	ListEnrollments(ctx context.Context, employeeID string) ([]*domain.Enrollment, error)
	GetEnrollment(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error)
	Progress(ctx context.Context, employeeID string) ([]domain.CourseProgress, error)
	// CurrentQuiz returns nil, nil once the course is mastered.
	CurrentQuiz(ctx context.Context, employeeID, courseID string) (*domain.Quiz, error)
	// CurrentAssignment is CurrentQuiz plus the enrollment the quiz was resolved from.
	CurrentAssignment(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, *domain.Quiz, error)
	// SubmitQuiz may return a non-nil result together with a STALE_SUBMISSION error when a
	// concurrent submission advanced the level first.
	SubmitQuiz(ctx context.Context, submission *domain.QuizSubmission) (*domain.SubmitResult, error)
}

type progressionController struct {
	catalog    domain.CourseCatalog
	store      domain.EnrollmentStore
	engine     *QuizEngine
	issuer     *CertificateIssuer
	dispatcher *AchievementDispatcher
	now        func() time.Time
}

// NewProgressionController wires the controller. dispatcher may be nil, in which case
// achievements are only returned inline.
func NewProgressionController(
	catalog domain.CourseCatalog,
	store domain.EnrollmentStore,
	engine *QuizEngine,
	issuer *CertificateIssuer,
	dispatcher *AchievementDispatcher,
) ProgressionController {
	return &progressionController{
		catalog:    catalog,
		store:      store,
		engine:     engine,
		issuer:     issuer,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// asDomainError keeps domain errors as they are and wraps anything else as INTERNAL_ERROR.
func asDomainError(message string, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domain.NewInternalError(message, err)
}

func (s *progressionController) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return nil, asDomainError("failed to list courses", err)
	}
	return courses, nil
}

func (s *progressionController) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	course, err := s.catalog.GetCourse(ctx, courseID)
	if err != nil {
		return nil, asDomainError("failed to get course", err)
	}
	return course, nil
}

func (s *progressionController) Enroll(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment, err := s.store.Create(ctx, employeeID, courseID)
	if err != nil {
		return nil, asDomainError("failed to create enrollment", err)
	}
	logger.Get().Info("Employee enrolled",
		zap.String("employee_id", employeeID),
		zap.String("course_id", courseID),
		zap.String("enrollment_id", enrollment.ID),
		zap.Int("level", enrollment.Level))
	return enrollment, nil
}

func (s *progressionController) ListEnrollments(ctx context.Context, employeeID string) ([]*domain.Enrollment, error) {
	enrollments, err := s.store.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, asDomainError("failed to list enrollments", err)
	}
	return enrollments, nil
}

func (s *progressionController) GetEnrollment(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	enrollment, err := s.store.Get(ctx, employeeID, courseID)
	if err != nil {
		return nil, asDomainError("failed to get enrollment", err)
	}
	if enrollment == nil {
		return nil, domain.NewEnrollmentNotFoundError(employeeID, courseID)
	}
	return enrollment, nil
}

func (s *progressionController) Progress(ctx context.Context, employeeID string) ([]domain.CourseProgress, error) {
	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.ListEnrollments(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[string]*domain.Enrollment, len(enrollments))
	for _, e := range enrollments {
		byCourse[e.CourseID] = e
	}
	progress := make([]domain.CourseProgress, 0, len(courses))
	for _, c := range courses {
		progress = append(progress, domain.CourseProgress{Course: c, Enrollment: byCourse[c.ID]})
	}
	return progress, nil
}

func (s *progressionController) CurrentQuiz(ctx context.Context, employeeID, courseID string) (*domain.Quiz, error) {
	_, quiz, err := s.CurrentAssignment(ctx, employeeID, courseID)
	return quiz, err
}

func (s *progressionController) CurrentAssignment(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, *domain.Quiz, error) {
	enrollment, err := s.GetEnrollment(ctx, employeeID, courseID)
	if err != nil {
		return nil, nil, err
	}
	if enrollment.IsMastered() {
		return enrollment, nil, nil
	}
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	quiz, err := quizForLevel(course, enrollment.Level)
	if err != nil {
		return nil, nil, err
	}
	return enrollment, quiz, nil
}

func quizForLevel(course *domain.Course, level int) (*domain.Quiz, error) {
	quiz := course.QuizForLevel(level)
	if quiz == nil {
		return nil, domain.NewInvalidQuizError(fmt.Sprintf("course %s has no quiz for level %d", course.ID, level)).
			WithContext("course_id", course.ID).
			WithContext("level", level)
	}
	return quiz, nil
}

func (s *progressionController) SubmitQuiz(ctx context.Context, sub *domain.QuizSubmission) (*domain.SubmitResult, error) {
	enrollment, err := s.GetEnrollment(ctx, sub.EmployeeID, sub.CourseID)
	if err != nil {
		return nil, err
	}
	if enrollment.IsMastered() {
		return nil, domain.NewAlreadyMasteredError(sub.EmployeeID, sub.CourseID)
	}
	if sub.Level != enrollment.Level {
		logger.Get().Info("Rejected stale quiz submission",
			zap.String("employee_id", sub.EmployeeID),
			zap.String("course_id", sub.CourseID),
			zap.Int("submitted_level", sub.Level),
			zap.Int("level", enrollment.Level))
		return nil, domain.NewStaleSubmissionError(sub.Level, enrollment.Level)
	}

	course, err := s.GetCourse(ctx, sub.CourseID)
	if err != nil {
		return nil, err
	}
	quiz, err := quizForLevel(course, sub.Level)
	if err != nil {
		return nil, err
	}

	if err := sub.Answers.Validate(); err != nil {
		return nil, err
	}
	grade := s.engine.Grade(quiz, sub.Answers)
	result := &domain.SubmitResult{
		Passed:       grade.Passed,
		CorrectCount: grade.CorrectCount,
		Total:        grade.Total,
		NewLevel:     enrollment.Level,
		Perfect:      grade.Perfect,
		Breakdown:    grade.Breakdown,
	}
	if !grade.Passed {
		return result, nil
	}

	advanced, err := s.store.Advance(ctx, sub.EmployeeID, sub.CourseID, sub.Level)
	if err != nil {
		if errors.Is(err, domain.ErrStaleSubmission) {
			stored := sub.Level
			if advanced != nil {
				stored = advanced.Level
				result.NewLevel = advanced.Level
			}
			logger.Get().Info("Lost level advance to a concurrent submission",
				zap.String("employee_id", sub.EmployeeID),
				zap.String("course_id", sub.CourseID),
				zap.Int("submitted_level", sub.Level),
				zap.Int("level", stored))
			return result, domain.NewStaleSubmissionError(sub.Level, stored).
				WithContext("correct_count", grade.CorrectCount).
				WithContext("passed", grade.Passed).
				WithContext("perfect", grade.Perfect)
		}
		return nil, asDomainError("failed to advance enrollment", err)
	}
	result.NewLevel = advanced.Level
	logger.Get().Info("Enrollment advanced",
		zap.String("employee_id", sub.EmployeeID),
		zap.String("course_id", sub.CourseID),
		zap.Int("level", advanced.Level),
		zap.Int("correct_count", grade.CorrectCount))

	if grade.Perfect {
		achievement := s.issuer.OnPerfectScore(sub.EmployeeID, sub.CourseID, course.Name, quiz.Title, sub.Level, s.now())
		result.Achievement = achievement
		if s.dispatcher != nil {
			s.dispatcher.Dispatch(achievement)
		}
	}
	return result, nil
}
