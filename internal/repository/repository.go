package repository

import (
	"context"
	"database/sql"
	"errors"

	"gradebook/internal/grades"
	"gradebook/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// PointRow is one line of the grades table.
type PointRow struct {
	ID       int64
	Student  string
	Course   string
	Semester int64
	Value    *float64
}

// StudentPointRow is one grade on a student's own page.
type StudentPointRow struct {
	Course   string
	Semester int64
	Value    *float64
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM users
		WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *Store) ListPoints(ctx context.Context) ([]PointRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, s.name, c.title, c.semester, p.value
		FROM points p
		JOIN student s ON p.id_student = s.id
		JOIN course c ON p.id_course = c.id
		ORDER BY s.name, c.semester, c.title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]PointRow, 0)
	for rows.Next() {
		var row PointRow
		if err := rows.Scan(&row.ID, &row.Student, &row.Course, &row.Semester, &row.Value); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM student ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.Student, 0)
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name); err != nil {
			return nil, err
		}
		result = append(result, student)
	}
	return result, rows.Err()
}

func (s *Store) GetStudent(ctx context.Context, id int64) (models.Student, error) {
	student := models.Student{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT name FROM student WHERE id = ?`, id).Scan(&student.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	return student, err
}

func (s *Store) ListStudentPoints(ctx context.Context, studentID int64) ([]StudentPointRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.title, c.semester, p.value
		FROM points p
		JOIN course c ON p.id_course = c.id
		WHERE p.id_student = ?
		ORDER BY c.semester, c.title
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]StudentPointRow, 0)
	for rows.Next() {
		var row StudentPointRow
		if err := rows.Scan(&row.Course, &row.Semester, &row.Value); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListCourseSamples returns every course joined with its points. Courses
// without points appear once with a nil value.
func (s *Store) ListCourseSamples(ctx context.Context) ([]grades.Sample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.semester, p.value
		FROM course c
		LEFT JOIN points p ON c.id = p.id_course
		ORDER BY c.id, p.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]grades.Sample, 0)
	for rows.Next() {
		var sample grades.Sample
		if err := rows.Scan(&sample.CourseID, &sample.Title, &sample.Semester, &sample.Value); err != nil {
			return nil, err
		}
		result = append(result, sample)
	}
	return result, rows.Err()
}
