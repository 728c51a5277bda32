package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"training-quiz/internal/domain"
)

// SeedQuiz is one quiz in a course seed file.
type SeedQuiz struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Questions    []string `json:"questions"`
	AnswerString string   `json:"answer_string"`
}

// SeedCourse is one course in a course seed file. Quizzes are listed by level, at most
// three; a null entry leaves the level without a quiz.
type SeedCourse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quizzes     []*SeedQuiz `json:"quizzes"`
}

// LoadSeedFile reads and validates a JSON course seed file.
func LoadSeedFile(path string) ([]*domain.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seeds []SeedCourse
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return CoursesFromSeed(seeds)
}

// CoursesFromSeed converts seed entries into validated domain courses ordered by ID.
func CoursesFromSeed(seeds []SeedCourse) ([]*domain.Course, error) {
	seen := make(map[string]bool, len(seeds))
	courses := make([]*domain.Course, 0, len(seeds))
	for _, s := range seeds {
		if seen[s.ID] {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("duplicate course id %s", s.ID))
		}
		seen[s.ID] = true

		if len(s.Quizzes) > domain.QuizzesPerCourse {
			return nil, domain.NewInvalidQuizError(fmt.Sprintf("course %s has %d quizzes, at most %d allowed", s.ID, len(s.Quizzes), domain.QuizzesPerCourse)).
				WithContext("course_id", s.ID)
		}
		course := &domain.Course{ID: s.ID, Name: s.Name, Description: s.Description}
		for level, q := range s.Quizzes {
			if q == nil {
				continue
			}
			course.Quizzes[level] = &domain.Quiz{
				ID:           q.ID,
				Title:        q.Title,
				Questions:    q.Questions,
				AnswerString: q.AnswerString,
			}
		}
		if err := course.Validate(); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}
