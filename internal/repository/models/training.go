package models

import (
	"database/sql"
	"time"
)

// Course maps the COURSES table. Quiz columns are NULL until the level's quiz is authored.
type Course struct {
	ID          string         `db:"ID"`
	Name        string         `db:"NAME"`
	Description sql.NullString `db:"DESCRIPTION"`
	Quiz1ID     sql.NullString `db:"QUIZ1_ID"`
	Quiz2ID     sql.NullString `db:"QUIZ2_ID"`
	Quiz3ID     sql.NullString `db:"QUIZ3_ID"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
}

// QuizIDs returns the quiz column per level.
func (c *Course) QuizIDs() [3]sql.NullString {
	return [3]sql.NullString{c.Quiz1ID, c.Quiz2ID, c.Quiz3ID}
}

// Quiz maps the QUIZZES table: ten prompt columns and a ten digit answer key.
type Quiz struct {
	ID           string    `db:"ID"`
	Title        string    `db:"TITLE"`
	Question1    string    `db:"QUESTION1"`
	Question2    string    `db:"QUESTION2"`
	Question3    string    `db:"QUESTION3"`
	Question4    string    `db:"QUESTION4"`
	Question5    string    `db:"QUESTION5"`
	Question6    string    `db:"QUESTION6"`
	Question7    string    `db:"QUESTION7"`
	Question8    string    `db:"QUESTION8"`
	Question9    string    `db:"QUESTION9"`
	Question10   string    `db:"QUESTION10"`
	AnswerString string    `db:"ANSWER_STRING"`
	CreatedAt    time.Time `db:"CREATED_AT"`
	UpdatedAt    time.Time `db:"UPDATED_AT"`
}

// Questions returns the prompt columns in order.
func (q *Quiz) Questions() []string {
	return []string{
		q.Question1, q.Question2, q.Question3, q.Question4, q.Question5,
		q.Question6, q.Question7, q.Question8, q.Question9, q.Question10,
	}
}

// Enrollment maps the COURSE_ENROLLMENTS table. LEVEL is reserved in Oracle.
type Enrollment struct {
	ID         string    `db:"ID"`
	EmployeeID string    `db:"EMPLOYEE_ID"`
	CourseID   string    `db:"COURSE_ID"`
	Level      int       `db:"ENROLLMENT_LEVEL"`
	CreatedAt  time.Time `db:"CREATED_AT"`
	UpdatedAt  time.Time `db:"UPDATED_AT"`
}
