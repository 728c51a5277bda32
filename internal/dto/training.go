package dto

import "time"

// EnrollRequest represents the body of POST /enroll
// @Description Enroll an employee in a course
type EnrollRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,identifier" example:"E1"`
	CourseID   string `json:"courseId" validate:"required,identifier" example:"C1"`
}

// SubmitQuizRequest represents the body of POST /quiz/submit
// @Description Answers for the quiz at the given level. answers maps question index (0-9) to option index (0-3).
type SubmitQuizRequest struct {
	EmployeeID string      `json:"employeeId" validate:"required,identifier" example:"E1"`
	CourseID   string      `json:"courseId" validate:"required,identifier" example:"C1"`
	Level      *int        `json:"level" validate:"required,min=0,max=3" example:"0"`
	Answers    map[int]int `json:"answers"`
}

// EmployeeQuery carries ?employeeId= for list endpoints
type EmployeeQuery struct {
	EmployeeID string `query:"employeeId" validate:"required,identifier"`
}

// EmployeeCourseQuery carries ?employeeId=&courseId=
type EmployeeCourseQuery struct {
	EmployeeID string `query:"employeeId" validate:"required,identifier"`
	CourseID   string `query:"courseId" validate:"required,identifier"`
}

// QuizSummary describes a level quiz without its questions or answer key
type QuizSummary struct {
	Level         int    `json:"level"`
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

// CourseResponse represents a course in the API response
// @Description Course information. Answer keys are never exposed.
type CourseResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Quizzes     []QuizSummary `json:"quizzes"`
}

// QuestionResponse is one prompt of a quiz
type QuestionResponse struct {
	Index  int    `json:"index"`
	Prompt string `json:"prompt"`
}

// QuizResponse represents the quiz an employee must take next
// @Description Current quiz for an enrollment, without the answer key
type QuizResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	CourseID  string             `json:"courseId"`
	Level     int                `json:"level"`
	Questions []QuestionResponse `json:"questions"`
}

// EnrollmentResponse represents an enrollment in the API response
type EnrollmentResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	CourseID   string    `json:"courseId"`
	Level      int       `json:"level"`
	Mastered   bool      `json:"mastered"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AchievementResponse is the perfect-score certificate event
type AchievementResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	CourseID   string    `json:"courseId"`
	CourseName string    `json:"courseName"`
	QuizTitle  string    `json:"quizTitle"`
	Level      int       `json:"level"`
	AwardedAt  time.Time `json:"awardedAt"`
}

// SubmitQuizResponse represents the grading outcome
// @Description Grading result. newLevel is the stored level after the submission.
type SubmitQuizResponse struct {
	Passed       bool                 `json:"passed"`
	CorrectCount int                  `json:"correctCount"`
	Total        int                  `json:"total"`
	NewLevel     int                  `json:"newLevel"`
	Perfect      bool                 `json:"perfect"`
	Breakdown    []bool               `json:"breakdown"`
	Achievement  *AchievementResponse `json:"achievement,omitempty"`
}

// CourseProgressResponse is one row of the training page
type CourseProgressResponse struct {
	CourseID    string `json:"courseId"`
	CourseName  string `json:"courseName"`
	Description string `json:"description"`
	Enrolled    bool   `json:"enrolled"`
	Level       int    `json:"level"`
	Percent     int    `json:"percent"`
	Status      string `json:"status"`
}

// ProgressResponse summarizes an employee's training
type ProgressResponse struct {
	EmployeeID   string                   `json:"employeeId"`
	Courses      []CourseProgressResponse `json:"courses"`
	Certificates int                      `json:"certificates"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status  string            `json:"status"`
	Storage string            `json:"storage"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// EnrollmentPathParams carries /enrollments/:employeeId/:courseId
type EnrollmentPathParams struct {
	EmployeeID string `params:"employeeId" validate:"required,identifier"`
	CourseID   string `params:"courseId" validate:"required,identifier"`
}
