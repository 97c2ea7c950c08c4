package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"

	"gradebook/internal/models"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("session not found")

// Store keeps authenticated sessions keyed by their opaque token.
type Store interface {
	Get(ctx context.Context, token string) (models.Session, error)
	Put(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, token string) error
}

// NewToken returns 32 random bytes encoded for use in a cookie.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MemoryStore lives as long as the process. Sessions never expire.
type MemoryStore struct {
	sessions map[string]models.Session
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.Session),
		logger:   logger,
	}
}

func (m *MemoryStore) Get(_ context.Context, token string) (models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[token]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	return session, nil
}

func (m *MemoryStore) Put(_ context.Context, session models.Session) error {
	if session.Token == "" {
		return errors.New("session token is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.Token] = session
	m.logger.Info("Created session", zap.Int64("userID", session.UserID), zap.String("username", session.Username))
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[token]; ok {
		delete(m.sessions, token)
		m.logger.Info("Ended session", zap.Int64("userID", session.UserID), zap.String("username", session.Username))
	}
	return nil
}
