package service

import (
	"training-quiz/internal/domain"
)

// QuizEngine grades multiple-choice submissions against a quiz's answer key.
// It holds no mutable state and is safe for concurrent use.
type QuizEngine struct {
	passThreshold int
}

// NewQuizEngine returns an engine that passes a submission with at least passThreshold
// correct answers.
func NewQuizEngine(passThreshold int) *QuizEngine {
	return &QuizEngine{passThreshold: passThreshold}
}

// PassThreshold returns the minimum correct count for a pass.
func (e *QuizEngine) PassThreshold() int {
	return e.passThreshold
}

// ParseQuestions returns the quiz prompts in order, or INVALID_QUIZ when the quiz shape or
// its answer key is malformed.
func (e *QuizEngine) ParseQuestions(quiz *domain.Quiz) ([]domain.Question, error) {
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	questions := make([]domain.Question, len(quiz.Questions))
	for i, prompt := range quiz.Questions {
		questions[i] = domain.Question{Index: i, Prompt: prompt}
	}
	return questions, nil
}

// Grade scores answers against a validated quiz. Missing answers count as incorrect.
func (e *QuizEngine) Grade(quiz *domain.Quiz, answers domain.Answers) domain.GradeResult {
	result := domain.GradeResult{
		Total:     domain.QuestionsPerQuiz,
		Breakdown: make([]bool, domain.QuestionsPerQuiz),
	}
	for i := 0; i < domain.QuestionsPerQuiz; i++ {
		chosen, ok := answers[i]
		if ok && chosen == quiz.CorrectOption(i) {
			result.Breakdown[i] = true
			result.CorrectCount++
		}
	}
	result.Passed = result.CorrectCount >= e.passThreshold
	result.Perfect = result.CorrectCount == domain.QuestionsPerQuiz
	return result
}

// IsAnswerCorrect checks a single question. index must be in 0..9.
func (e *QuizEngine) IsAnswerCorrect(quiz *domain.Quiz, index, answer int) (bool, error) {
	if index < 0 || index >= domain.QuestionsPerQuiz {
		return false, domain.NewIndexOutOfRangeError(index)
	}
	return quiz.CorrectOption(index) == answer, nil
}
