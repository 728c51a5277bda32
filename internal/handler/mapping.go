package handler

import (
	"training-quiz/internal/domain"
	"training-quiz/internal/dto"
)

func toCourseResponse(c *domain.Course) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Quizzes:     make([]dto.QuizSummary, 0, domain.QuizzesPerCourse),
	}
	for level, q := range c.Quizzes {
		if q == nil {
			continue
		}
		resp.Quizzes = append(resp.Quizzes, dto.QuizSummary{
			Level:         level,
			ID:            q.ID,
			Title:         q.Title,
			QuestionCount: len(q.Questions),
		})
	}
	return resp
}

// toQuizResponse never copies the answer key.
func toQuizResponse(courseID string, level int, q *domain.Quiz) dto.QuizResponse {
	questions := make([]dto.QuestionResponse, len(q.Questions))
	for i, prompt := range q.Questions {
		questions[i] = dto.QuestionResponse{Index: i, Prompt: prompt}
	}
	return dto.QuizResponse{
		ID:        q.ID,
		Title:     q.Title,
		CourseID:  courseID,
		Level:     level,
		Questions: questions,
	}
}

func toEnrollmentResponse(e *domain.Enrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		CourseID:   e.CourseID,
		Level:      e.Level,
		Mastered:   e.IsMastered(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toSubmitQuizResponse(r *domain.SubmitResult) dto.SubmitQuizResponse {
	resp := dto.SubmitQuizResponse{
		Passed:       r.Passed,
		CorrectCount: r.CorrectCount,
		Total:        r.Total,
		NewLevel:     r.NewLevel,
		Perfect:      r.Perfect,
		Breakdown:    r.Breakdown,
	}
	if a := r.Achievement; a != nil {
		resp.Achievement = &dto.AchievementResponse{
			ID:         a.ID,
			EmployeeID: a.EmployeeID,
			CourseID:   a.CourseID,
			CourseName: a.CourseName,
			QuizTitle:  a.QuizTitle,
			Level:      a.Level,
			AwardedAt:  a.AwardedAt,
		}
	}
	return resp
}

func toProgressResponse(employeeID string, progress []domain.CourseProgress) dto.ProgressResponse {
	resp := dto.ProgressResponse{
		EmployeeID: employeeID,
		Courses:    make([]dto.CourseProgressResponse, 0, len(progress)),
	}
	for _, p := range progress {
		row := dto.CourseProgressResponse{
			CourseID:    p.Course.ID,
			CourseName:  p.Course.Name,
			Description: p.Course.Description,
			Enrolled:    p.Enrollment != nil,
			Percent:     p.Percent(),
			Status:      string(p.Status()),
		}
		if p.Enrollment != nil {
			row.Level = p.Enrollment.Level
		}
		if p.Status() == domain.StatusCompleted {
			resp.Certificates++
		}
		resp.Courses = append(resp.Courses, row)
	}
	return resp
}
