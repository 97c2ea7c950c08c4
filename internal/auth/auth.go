package auth

import (
	"context"
	"errors"

	"gradebook/internal/models"
	"gradebook/internal/repository"
	"gradebook/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

type Authenticator struct {
	users    UserFinder
	sessions session.Store
	logger   *zap.Logger
}

func NewAuthenticator(users UserFinder, sessions session.Store, logger *zap.Logger) *Authenticator {
	return &Authenticator{users: users, sessions: sessions, logger: logger}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Login verifies the credentials and opens a new session.
func (a *Authenticator) Login(ctx context.Context, username, password string) (models.Session, error) {
	if username == "" || password == "" {
		return models.Session{}, ErrInvalidCredentials
	}

	user, err := a.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		a.logger.Info("Rejected login", zap.String("username", username))
		return models.Session{}, ErrInvalidCredentials
	}

	token, err := session.NewToken()
	if err != nil {
		return models.Session{}, err
	}
	sess := models.Session{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}
	if err := a.sessions.Put(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (a *Authenticator) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sessions.Delete(ctx, token)
}

// Lookup reports whether token names a live session.
func (a *Authenticator) Lookup(ctx context.Context, token string) (models.Session, bool, error) {
	if token == "" {
		return models.Session{}, false, nil
	}
	sess, err := a.sessions.Get(ctx, token)
	if errors.Is(err, session.ErrNotFound) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, err
	}
	return sess, true, nil
}
