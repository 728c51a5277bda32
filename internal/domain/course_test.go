package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenQuestions() []string {
	qs := make([]string, QuestionsPerQuiz)
	for i := range qs {
		qs[i] = "Question prompt"
	}
	return qs
}

func TestNewQuiz_Validate(t *testing.T) {
	tests := []struct {
		name         string
		questions    []string
		answerString string
		wantErr      bool
	}{
		{"valid quiz", tenQuestions(), "0123012301", false},
		{"all zeros", tenQuestions(), "0000000000", false},
		{"short answer string", tenQuestions(), "012301230", true},
		{"long answer string", tenQuestions(), "01230123012", true},
		{"digit out of range", tenQuestions(), "0123412301", true},
		{"letter key", tenQuestions(), "ABCDABCDAB", true},
		{"nine questions", tenQuestions()[:9], "0123012301", true},
		{"empty prompt", append(tenQuestions()[:9], " "), "0123012301", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz, err := NewQuiz("q1", "Safety basics", tt.questions, tt.answerString)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, quiz)
				assert.True(t, errors.Is(err, ErrInvalidQuiz))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.answerString, quiz.AnswerString)
		})
	}
}

func TestQuiz_CorrectOption(t *testing.T) {
	quiz, err := NewQuiz("q1", "Safety basics", tenQuestions(), "0123012301")
	require.NoError(t, err)

	want := []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}
	for i, w := range want {
		assert.Equal(t, w, quiz.CorrectOption(i))
	}
}

func TestCourse_QuizForLevel(t *testing.T) {
	q0, _ := NewQuiz("q0", "Level 1", tenQuestions(), "0000000000")
	q1, _ := NewQuiz("q1", "Level 2", tenQuestions(), "1111111111")
	course := &Course{ID: "C1", Name: "Onboarding", Quizzes: [QuizzesPerCourse]*Quiz{q0, q1, nil}}

	assert.Same(t, q0, course.QuizForLevel(0))
	assert.Same(t, q1, course.QuizForLevel(1))
	assert.Nil(t, course.QuizForLevel(2))
	assert.Nil(t, course.QuizForLevel(MasteredLevel))
	assert.Nil(t, course.QuizForLevel(-1))
}

func TestCourse_Validate_TagsCourseAndLevel(t *testing.T) {
	bad := &Quiz{ID: "bad", Title: "Broken", Questions: tenQuestions(), AnswerString: "01"}
	course := &Course{ID: "C9", Name: "Broken course", Quizzes: [QuizzesPerCourse]*Quiz{nil, bad, nil}}

	err := course.Validate()
	require.Error(t, err)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CodeInvalidQuiz, de.Code)
	assert.Equal(t, "C9", de.Context["course_id"])
	assert.Equal(t, 1, de.Context["level"])
}

func TestAnswers_Validate(t *testing.T) {
	assert.NoError(t, Answers{}.Validate())
	assert.NoError(t, Answers{0: 0, 9: 3}.Validate())

	err := Answers{0: 4}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidSubmission))

	err = Answers{10: 1}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidSubmission))

	err = Answers{-1: 1}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidSubmission))
}

func TestNextLevel(t *testing.T) {
	assert.Equal(t, 1, NextLevel(0))
	assert.Equal(t, 2, NextLevel(1))
	assert.Equal(t, 3, NextLevel(2))
	assert.Equal(t, 3, NextLevel(3))
}

func TestCourseProgress(t *testing.T) {
	course := &Course{ID: "C1", Name: "Onboarding"}

	p := CourseProgress{Course: course}
	assert.Equal(t, StatusAvailable, p.Status())
	assert.Equal(t, 0, p.Percent())

	p.Enrollment = &Enrollment{Level: 1}
	assert.Equal(t, StatusInProgress, p.Status())
	assert.Equal(t, 33, p.Percent())

	p.Enrollment.Level = MasteredLevel
	assert.Equal(t, StatusCompleted, p.Status())
	assert.Equal(t, 100, p.Percent())
}
