package domain

import "fmt"

// Answers maps a question index (0..9) to the chosen option index (0..3).
// Unanswered questions are simply absent and count as incorrect.
type Answers map[int]int

// Validate rejects answers that reference a question or option that cannot exist.
func (a Answers) Validate() error {
	for index, option := range a {
		if index < 0 || index >= QuestionsPerQuiz {
			return NewInvalidSubmissionError(fmt.Sprintf("answer references question %d, valid range is 0-%d", index, QuestionsPerQuiz-1)).
				WithContext("index", index)
		}
		if option < 0 || option >= OptionsPerQuestion {
			return NewInvalidSubmissionError(fmt.Sprintf("answer to question %d is option %d, valid range is 0-%d", index, option, OptionsPerQuestion-1)).
				WithContext("index", index).
				WithContext("option", option)
		}
	}
	return nil
}

// QuizSubmission is a request scoped attempt at the quiz for Level.
type QuizSubmission struct {
	EmployeeID string
	CourseID   string
	Level      int
	Answers    Answers
}

// GradeResult is the outcome of grading one submission.
type GradeResult struct {
	CorrectCount int
	Total        int
	Passed       bool
	Perfect      bool
	// Breakdown[i] reports whether question i was answered correctly.
	Breakdown []bool
}

// SubmitResult is what a quiz submission returns to the caller.
type SubmitResult struct {
	Passed       bool
	CorrectCount int
	Total        int
	NewLevel     int
	Perfect      bool
	Breakdown    []bool
	Achievement  *Achievement
}
