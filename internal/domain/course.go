package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// QuestionsPerQuiz is the fixed number of prompts (and answer-key digits) in a quiz.
	QuestionsPerQuiz = 10
	// OptionsPerQuestion is the number of choices per prompt; options are indexed 0..3.
	OptionsPerQuestion = 4
	// MasteredLevel is the terminal level; it has no quiz.
	MasteredLevel = 3
	// QuizzesPerCourse is one quiz per non-terminal level.
	QuizzesPerCourse = MasteredLevel
)

// Question is a single prompt of a quiz, numbered from zero.
type Question struct {
	Index  int
	Prompt string
}

// Quiz is a ten question multiple-choice assessment guarding one course level.
// AnswerString holds the correct option index for question i at position i.
type Quiz struct {
	ID           string
	Title        string
	Questions    []string
	AnswerString string
}

// NewQuiz builds a quiz and checks its answer key. Quizzes are validated once here, at
// ingestion, so grading never needs to re-check the key.
func NewQuiz(id, title string, questions []string, answerString string) (*Quiz, error) {
	q := &Quiz{
		ID:           id,
		Title:        title,
		Questions:    questions,
		AnswerString: answerString,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the quiz shape: exactly ten questions and a ten character key of '0'..'3'.
func (q *Quiz) Validate() error {
	if q == nil {
		return NewInvalidQuizError("quiz is missing")
	}
	if len(q.Questions) != QuestionsPerQuiz {
		return NewInvalidQuizError(fmt.Sprintf("quiz %q has %d questions, want %d", q.ID, len(q.Questions), QuestionsPerQuiz)).
			WithContext("quiz_id", q.ID)
	}
	if err := ValidateAnswerString(q.AnswerString); err != nil {
		err.WithContext("quiz_id", q.ID)
		return err
	}
	for i, prompt := range q.Questions {
		if strings.TrimSpace(prompt) == "" {
			return NewInvalidQuizError(fmt.Sprintf("quiz %q question %d is empty", q.ID, i)).
				WithContext("quiz_id", q.ID)
		}
	}
	return nil
}

// ValidateAnswerString checks the wire format of an answer key.
func ValidateAnswerString(answerString string) *DomainError {
	if len(answerString) != QuestionsPerQuiz {
		return NewInvalidQuizError(fmt.Sprintf("answer string must be %d characters, got %d", QuestionsPerQuiz, len(answerString)))
	}
	for i := 0; i < len(answerString); i++ {
		c := answerString[i]
		if c < '0' || c >= '0'+OptionsPerQuestion {
			return NewInvalidQuizError(fmt.Sprintf("answer string has invalid character %q at position %d", c, i))
		}
	}
	return nil
}

// CorrectOption returns the answer key digit for question index i.
// The caller must have validated the quiz.
func (q *Quiz) CorrectOption(i int) int {
	return int(q.AnswerString[i] - '0')
}

// Course is a read-only training course. Quizzes[L] guards the move from level L to L+1;
// there is no quiz for MasteredLevel.
type Course struct {
	ID          string
	Name        string
	Description string
	Quizzes     [QuizzesPerCourse]*Quiz
}

// QuizForLevel returns the quiz a learner at level must pass, or nil when the level has
// no quiz (mastered or out of range).
func (c *Course) QuizForLevel(level int) *Quiz {
	if level < 0 || level >= QuizzesPerCourse {
		return nil
	}
	return c.Quizzes[level]
}

// Validate checks every attached quiz.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return NewInvalidInputError("course id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewInvalidInputError(fmt.Sprintf("course %s has no name", c.ID))
	}
	for level, quiz := range c.Quizzes {
		if quiz == nil {
			continue
		}
		if err := quiz.Validate(); err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				de.WithContext("course_id", c.ID).WithContext("level", level)
			}
			return err
		}
	}
	return nil
}

// CourseCatalog is the read-only accessor over authored courses.
type CourseCatalog interface {
	// ListCourses returns every course ordered by ID.
	ListCourses(ctx context.Context) ([]*Course, error)
	// GetCourse returns the course or a COURSE_NOT_FOUND error.
	GetCourse(ctx context.Context, courseID string) (*Course, error)
}
