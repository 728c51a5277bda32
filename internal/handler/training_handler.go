package handler

import (
	"training-quiz/internal/domain"
	"training-quiz/internal/dto"
	"training-quiz/internal/middleware"
	"training-quiz/internal/service"
	"training-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TrainingHandler handles course, enrollment and quiz HTTP requests
type TrainingHandler struct {
	service   service.ProgressionController
	validator *validation.Validator
}

// NewTrainingHandler creates a new TrainingHandler instance
func NewTrainingHandler(service service.ProgressionController, validator *validation.Validator) *TrainingHandler {
	return &TrainingHandler{
		service:   service,
		validator: validator,
	}
}

// ListCourses godoc
// @Summary List courses
// @Description Returns every course ordered by ID. Answer keys are never included.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /courses [get]
func (h *TrainingHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, toCourseResponse(course))
	}
	return c.JSON(resp)
}

// GetCourse godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{courseId} [get]
func (h *TrainingHandler) GetCourse(c *fiber.Ctx) error {
	course, err := h.service.GetCourse(c.UserContext(), c.Params("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(toCourseResponse(course))
}

// ListEnrollments godoc
// @Summary List an employee's enrollments
// @Tags enrollments
// @Produce json
// @Param employeeId query string true "Employee ID"
// @Success 200 {array} dto.EnrollmentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /enrollments [get]
func (h *TrainingHandler) ListEnrollments(c *fiber.Ctx) error {
	q := c.Locals(middleware.ValidatedEmployeeQueryKey).(dto.EmployeeQuery)
	if err := middleware.AuthorizeEmployee(c, q.EmployeeID); err != nil {
		return err
	}

	enrollments, err := h.service.ListEnrollments(c.UserContext(), q.EmployeeID)
	if err != nil {
		return err
	}
	resp := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		resp = append(resp, toEnrollmentResponse(e))
	}
	return c.JSON(resp)
}

// GetEnrollment godoc
// @Summary Get a single enrollment
// @Tags enrollments
// @Produce json
// @Param employeeId path string true "Employee ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /enrollments/{employeeId}/{courseId} [get]
func (h *TrainingHandler) GetEnrollment(c *fiber.Ctx) error {
	var params dto.EnrollmentPathParams
	if err := c.ParamsParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid path parameters")
	}
	if err := h.validator.Struct(params); err != nil {
		return err
	}
	if err := middleware.AuthorizeEmployee(c, params.EmployeeID); err != nil {
		return err
	}

	enrollment, err := h.service.GetEnrollment(c.UserContext(), params.EmployeeID, params.CourseID)
	if err != nil {
		return err
	}
	return c.JSON(toEnrollmentResponse(enrollment))
}

// GetProgress godoc
// @Summary Training progress for an employee
// @Description Every course with its status (available, in-progress, completed), percent and the number of certificates earned.
// @Tags enrollments
// @Produce json
// @Param employeeId query string true "Employee ID"
// @Success 200 {object} dto.ProgressResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (h *TrainingHandler) GetProgress(c *fiber.Ctx) error {
	q := c.Locals(middleware.ValidatedEmployeeQueryKey).(dto.EmployeeQuery)
	if err := middleware.AuthorizeEmployee(c, q.EmployeeID); err != nil {
		return err
	}

	progress, err := h.service.Progress(c.UserContext(), q.EmployeeID)
	if err != nil {
		return err
	}
	return c.JSON(toProgressResponse(q.EmployeeID, progress))
}

// Enroll godoc
// @Summary Enroll an employee in a course
// @Description Idempotent: enrolling twice returns the existing enrollment unchanged.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollRequest true "Enrollment"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /enroll [post]
func (h *TrainingHandler) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	if err := middleware.AuthorizeEmployee(c, req.EmployeeID); err != nil {
		return err
	}

	enrollment, err := h.service.Enroll(c.UserContext(), req.EmployeeID, req.CourseID)
	if err != nil {
		return err
	}
	return c.JSON(toEnrollmentResponse(enrollment))
}

// CurrentQuiz godoc
// @Summary Quiz for the employee's current level
// @Description Returns 204 when the course is mastered.
// @Tags quiz
// @Produce json
// @Param employeeId query string true "Employee ID"
// @Param courseId query string true "Course ID"
// @Success 200 {object} dto.QuizResponse
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/current [get]
func (h *TrainingHandler) CurrentQuiz(c *fiber.Ctx) error {
	q := c.Locals(middleware.ValidatedEmployeeCourseQueryKey).(dto.EmployeeCourseQuery)
	if err := middleware.AuthorizeEmployee(c, q.EmployeeID); err != nil {
		return err
	}

	enrollment, quiz, err := h.service.CurrentAssignment(c.UserContext(), q.EmployeeID, q.CourseID)
	if err != nil {
		return err
	}
	if quiz == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(toQuizResponse(q.CourseID, enrollment.Level, quiz))
}

// SubmitQuiz godoc
// @Summary Submit answers for the current level
// @Description Grades the answers and advances the level on a pass. A submission for a level other than the stored one fails with STALE_SUBMISSION (409).
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/submit [post]
func (h *TrainingHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	if err := middleware.AuthorizeEmployee(c, req.EmployeeID); err != nil {
		return err
	}

	result, err := h.service.SubmitQuiz(c.UserContext(), &domain.QuizSubmission{
		EmployeeID: req.EmployeeID,
		CourseID:   req.CourseID,
		Level:      *req.Level,
		Answers:    domain.Answers(req.Answers),
	})
	if err != nil {
		// a lost advance carries its grade in the STALE_SUBMISSION details
		return err
	}
	return c.JSON(toSubmitQuizResponse(result))
}
