package models

// Users are provisioned out of band (see cmd/useradd); the web app only reads them.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

func (User) TableName() string { return "users" }

type Student struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (Student) TableName() string { return "student" }

type Course struct {
	ID       int64  `gorm:"primaryKey"`
	Title    string `gorm:"not null"`
	Semester int64  `gorm:"not null"`
}

func (Course) TableName() string { return "course" }

// Point is one grade of a student in a course. Value is nil when the grade
// has not been recorded yet.
type Point struct {
	ID        int64    `gorm:"primaryKey"`
	StudentID int64    `gorm:"column:id_student;not null;index"`
	CourseID  int64    `gorm:"column:id_course;not null;index"`
	Value     *float64 `gorm:"column:value"`

	Student *Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  *Course  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Point) TableName() string { return "points" }

type Session struct {
	Token    string `json:"-"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
