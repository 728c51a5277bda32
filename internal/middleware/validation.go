package middleware

import (
	"training-quiz/internal/dto"
	"training-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedEmployeeQueryKey       = "validated_employee_query"
	ValidatedEmployeeCourseQueryKey = "validated_employee_course_query"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateEmployeeQuery validates ?employeeId= and stores the parsed query in locals.
func (vm *ValidationMiddleware) ValidateEmployeeQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.EmployeeQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed query string")
		}
		if err := vm.validator.Struct(q); err != nil {
			return err // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedEmployeeQueryKey, q)
		return c.Next()
	}
}

// ValidateEmployeeCourseQuery validates ?employeeId=&courseId= and stores the parsed query in locals.
func (vm *ValidationMiddleware) ValidateEmployeeCourseQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.EmployeeCourseQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed query string")
		}
		if err := vm.validator.Struct(q); err != nil {
			return err
		}
		c.Locals(ValidatedEmployeeCourseQueryKey, q)
		return c.Next()
	}
}
