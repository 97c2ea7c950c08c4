package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gradebook/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUserExists = errors.New("user already exists")

// DB holds one SQLite connection pool shared by the raw query layer and gorm.
type DB struct {
	SQL  *sql.DB
	Gorm *gorm.DB
}

func NewSQLite(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	if isMemory(path) {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	gormDB, err := gorm.Open(&sqlite.Dialector{DriverName: "sqlite3", Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	db := &DB{SQL: sqlDB, Gorm: gormDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// migrate creates the tables that do not exist yet. Existing tables belong to
// whoever provisioned the database and are never altered.
func (db *DB) migrate() error {
	migrator := db.Gorm.Migrator()
	for _, model := range []interface{}{&models.User{}, &models.Student{}, &models.Course{}, &models.Point{}} {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.SQL.Close()
}

// CreateUser stores a user with an already hashed password.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	var user models.User
	err := db.Gorm.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return models.User{}, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	user = models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := db.Gorm.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func isMemory(path string) bool {
	return strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
}
