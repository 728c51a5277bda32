package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"training-quiz/internal/domain"
	"training-quiz/internal/repository/models"
	"training-quiz/internal/util"

	"golang.org/x/sync/errgroup"
)

const courseColumns = `ID, NAME, DESCRIPTION, QUIZ1_ID, QUIZ2_ID, QUIZ3_ID, CREATED_AT, UPDATED_AT`

const quizColumns = `ID, TITLE, QUESTION1, QUESTION2, QUESTION3, QUESTION4, QUESTION5,
	QUESTION6, QUESTION7, QUESTION8, QUESTION9, QUESTION10, ANSWER_STRING, CREATED_AT, UPDATED_AT`

// CourseCatalogDatabaseAdapter implements domain.CourseCatalog over the COURSES and
// QUIZZES tables. Rows are validated on load; a malformed key never reaches grading.
type CourseCatalogDatabaseAdapter struct {
	db DBTX
}

func NewCourseCatalogDatabaseAdapter(db DBTX) *CourseCatalogDatabaseAdapter {
	return &CourseCatalogDatabaseAdapter{db: db}
}

// ListCourses implements domain.CourseCatalog.
func (a *CourseCatalogDatabaseAdapter) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	exec := GetExecutor(ctx, a.db)

	var courseRows []models.Course
	query := `SELECT ` + courseColumns + ` FROM COURSES ORDER BY ID`
	if err := exec.SelectContext(ctx, &courseRows, query); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	if len(courseRows) == 0 {
		return []*domain.Course{}, nil
	}

	var quizRows []models.Quiz
	query = `SELECT ` + quizColumns + ` FROM QUIZZES`
	if err := exec.SelectContext(ctx, &quizRows, query); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	quizzes := make(map[string]*models.Quiz, len(quizRows))
	for i := range quizRows {
		quizzes[quizRows[i].ID] = &quizRows[i]
	}

	courses := make([]*domain.Course, 0, len(courseRows))
	for i := range courseRows {
		course, err := toDomainCourse(&courseRows[i], quizzes)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// GetCourse implements domain.CourseCatalog. The level quizzes are fetched concurrently.
func (a *CourseCatalogDatabaseAdapter) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	exec := GetExecutor(ctx, a.db)

	var row models.Course
	query := `SELECT ` + courseColumns + ` FROM COURSES WHERE ID = :1`
	if err := exec.GetContext(ctx, &row, query, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewCourseNotFoundError(courseID)
		}
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}

	ids := row.QuizIDs()
	loaded := make([]*models.Quiz, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for level, id := range ids {
		if !id.Valid {
			continue
		}
		g.Go(func() error {
			quiz, err := a.getQuiz(gctx, exec, id.String)
			if err != nil {
				return err
			}
			loaded[level] = quiz
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quizzes := make(map[string]*models.Quiz, len(loaded))
	for _, q := range loaded {
		if q != nil {
			quizzes[q.ID] = q
		}
	}
	return toDomainCourse(&row, quizzes)
}

func (a *CourseCatalogDatabaseAdapter) getQuiz(ctx context.Context, exec DBTX, quizID string) (*models.Quiz, error) {
	var q models.Quiz
	query := `SELECT ` + quizColumns + ` FROM QUIZZES WHERE ID = :1`
	if err := exec.GetContext(ctx, &q, query, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}
	return &q, nil
}

// SaveQuiz inserts the quiz or updates it in place. The quiz must already be validated.
func (a *CourseCatalogDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, a.db)
	now := time.Now()
	q := quiz.Questions

	query := `UPDATE QUIZZES SET TITLE = :1, QUESTION1 = :2, QUESTION2 = :3, QUESTION3 = :4,
		QUESTION4 = :5, QUESTION5 = :6, QUESTION6 = :7, QUESTION7 = :8, QUESTION8 = :9,
		QUESTION9 = :10, QUESTION10 = :11, ANSWER_STRING = :12, UPDATED_AT = :13
		WHERE ID = :14`
	res, err := exec.ExecContext(ctx, query, quiz.Title,
		q[0], q[1], q[2], q[3], q[4], q[5], q[6], q[7], q[8], q[9],
		quiz.AnswerString, now, quiz.ID)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for quiz %s: %w", quiz.ID, err)
	}
	if n > 0 {
		return nil
	}

	query = `INSERT INTO QUIZZES (` + quizColumns + `)
		VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15)`
	if _, err := exec.ExecContext(ctx, query, quiz.ID, quiz.Title,
		q[0], q[1], q[2], q[3], q[4], q[5], q[6], q[7], q[8], q[9],
		quiz.AnswerString, now, now); err != nil {
		return fmt.Errorf("failed to insert quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// SaveCourse inserts the course or updates it in place. Referenced quizzes must be saved first.
func (a *CourseCatalogDatabaseAdapter) SaveCourse(ctx context.Context, course *domain.Course) error {
	exec := GetExecutor(ctx, a.db)
	now := time.Now()

	var quizIDs [domain.QuizzesPerCourse]interface{}
	for level, quiz := range course.Quizzes {
		if quiz != nil {
			quizIDs[level] = util.StringToNullString(quiz.ID)
		} else {
			quizIDs[level] = sql.NullString{}
		}
	}
	description := util.StringToNullString(course.Description)

	query := `UPDATE COURSES SET NAME = :1, DESCRIPTION = :2, QUIZ1_ID = :3, QUIZ2_ID = :4,
		QUIZ3_ID = :5, UPDATED_AT = :6 WHERE ID = :7`
	res, err := exec.ExecContext(ctx, query, course.Name, description,
		quizIDs[0], quizIDs[1], quizIDs[2], now, course.ID)
	if err != nil {
		return fmt.Errorf("failed to update course %s: %w", course.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for course %s: %w", course.ID, err)
	}
	if n > 0 {
		return nil
	}

	query = `INSERT INTO COURSES (` + courseColumns + `) VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
	if _, err := exec.ExecContext(ctx, query, course.ID, course.Name, description,
		quizIDs[0], quizIDs[1], quizIDs[2], now, now); err != nil {
		return fmt.Errorf("failed to insert course %s: %w", course.ID, err)
	}
	return nil
}

func toDomainCourse(row *models.Course, quizzes map[string]*models.Quiz) (*domain.Course, error) {
	course := &domain.Course{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
	}
	for level, id := range row.QuizIDs() {
		if !id.Valid {
			continue
		}
		q, ok := quizzes[id.String]
		if !ok {
			return nil, domain.NewInvalidQuizError(fmt.Sprintf("course %s references unknown quiz %s", row.ID, id.String)).
				WithContext("course_id", row.ID).
				WithContext("level", level)
		}
		course.Quizzes[level] = &domain.Quiz{
			ID:           q.ID,
			Title:        q.Title,
			Questions:    q.Questions(),
			AnswerString: q.AnswerString,
		}
	}
	if err := course.Validate(); err != nil {
		return nil, err
	}
	return course, nil
}
