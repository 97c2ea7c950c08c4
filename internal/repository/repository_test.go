package repository

import (
	"context"
	"errors"
	"testing"

	"gradebook/internal/models"
	"gradebook/internal/storage"
)

func setupTestDB(t *testing.T) *storage.DB {
	db, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(v float64) *float64 { return &v }

func seed(t *testing.T, db *storage.DB) (models.Student, models.Student) {
	t.Helper()
	olena := models.Student{Name: "Olena Kovalenko"}
	andrii := models.Student{Name: "Andrii Bondar"}
	databases := models.Course{Title: "Databases", Semester: 1}
	networks := models.Course{Title: "Networks", Semester: 2}
	empty := models.Course{Title: "Compilers", Semester: 2}
	for _, v := range []interface{}{&olena, &andrii, &databases, &networks, &empty} {
		if err := db.Gorm.Create(v).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	points := []models.Point{
		{StudentID: olena.ID, CourseID: databases.ID, Value: ptr(91)},
		{StudentID: olena.ID, CourseID: networks.ID, Value: nil},
		{StudentID: andrii.ID, CourseID: databases.ID, Value: ptr(64)},
	}
	if err := db.Gorm.Create(&points).Error; err != nil {
		t.Fatalf("seed points: %v", err)
	}
	return olena, andrii
}

func TestGetUserByUsername(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db.SQL)
	ctx := context.Background()

	if _, err := db.CreateUser(ctx, "admin", "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	user, err := store.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "admin" || user.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPoints(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	store := NewStore(db.SQL)

	rows, err := store.ListPoints(context.Background())
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Student != "Andrii Bondar" {
		t.Fatalf("expected rows ordered by student name, got %s first", rows[0].Student)
	}
	if rows[2].Course != "Networks" || rows[2].Value != nil {
		t.Fatalf("expected ungraded networks row last, got %+v", rows[2])
	}
}

func TestListStudents(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	store := NewStore(db.SQL)

	students, err := store.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(students) != 2 || students[0].Name != "Andrii Bondar" {
		t.Fatalf("unexpected students: %+v", students)
	}
}

func TestStudentPoints(t *testing.T) {
	db := setupTestDB(t)
	olena, _ := seed(t, db)
	store := NewStore(db.SQL)
	ctx := context.Background()

	student, err := store.GetStudent(ctx, olena.ID)
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	if student.Name != olena.Name {
		t.Fatalf("expected %s, got %s", olena.Name, student.Name)
	}

	rows, err := store.ListStudentPoints(ctx, olena.ID)
	if err != nil {
		t.Fatalf("list student points: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Course != "Databases" || rows[0].Value == nil || *rows[0].Value != 91 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}

	if _, err := store.GetStudent(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCourseSamples(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	store := NewStore(db.SQL)

	samples, err := store.ListCourseSamples(context.Background())
	if err != nil {
		t.Fatalf("list samples: %v", err)
	}
	// Two points for databases, one for networks, one empty row for compilers.
	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}
	last := samples[len(samples)-1]
	if last.Title != "Compilers" || last.Value != nil {
		t.Fatalf("expected empty compilers sample, got %+v", last)
	}
}
