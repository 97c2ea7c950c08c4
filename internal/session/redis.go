package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gradebook/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "gradebook:session:"

// RedisStore survives restarts and can be shared by several processes.
// A zero ttl keeps sessions until logout.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, token string) (models.Session, error) {
	value, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(value, &session); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	session.Token = token
	return session, nil
}

func (s *RedisStore) Put(ctx context.Context, session models.Session) error {
	if session.Token == "" {
		return errors.New("session token is empty")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, sessionKey(session.Token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	s.logger.Info("Created session", zap.Int64("userID", session.UserID), zap.String("username", session.Username))
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return keyPrefix + token
}
