package handler

import (
	"training-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the training API on api. protect guards the employee scoped
// routes and may be nil when bearer auth is disabled.
func RegisterRoutes(api fiber.Router, h *TrainingHandler, vm *middleware.ValidationMiddleware, protect fiber.Handler) {
	guard := func(handlers ...fiber.Handler) []fiber.Handler {
		if protect == nil {
			return handlers
		}
		return append([]fiber.Handler{protect}, handlers...)
	}

	// Catalog routes are public
	api.Get("/courses", h.ListCourses)
	api.Get("/courses/:courseId", h.GetCourse)

	api.Get("/enrollments", guard(vm.ValidateEmployeeQuery(), h.ListEnrollments)...)
	api.Get("/enrollments/:employeeId/:courseId", guard(h.GetEnrollment)...)
	api.Get("/progress", guard(vm.ValidateEmployeeQuery(), h.GetProgress)...)
	api.Post("/enroll", guard(h.Enroll)...)
	api.Get("/quiz/current", guard(vm.ValidateEmployeeCourseQuery(), h.CurrentQuiz)...)
	api.Post("/quiz/submit", guard(h.SubmitQuiz)...)
}
