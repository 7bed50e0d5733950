package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pairdiary/config"
	"pairdiary/db"
	"pairdiary/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStore maps opaque bearer tokens to user ids. It is an interface so
// the backing store can move out of process without touching callers.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Destroy(ctx context.Context, token string) error
}

// Sessions is the store selected at boot.
var Sessions SessionStore

// InitSessionStore picks the configured backend. The redis store gets expiry
// for free via key TTL; the db store checks expires_at on resolve.
func InitSessionStore() error {
	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}
	ttl := time.Duration(config.AppConfig.Session.TTLHours) * time.Hour

	if config.AppConfig.Session.Store == "redis" {
		if !config.AppConfig.Redis.Enabled {
			return fmt.Errorf("session store is redis but redis is disabled")
		}
		redisConf := config.AppConfig.Redis
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port),
			Password: redisConf.Password,
			DB:       redisConf.DB,
		})
		if _, err := client.Ping(context.Background()).Result(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		Sessions = NewRedisSessionStore(client, ttl)
		return nil
	}

	Sessions = NewDBSessionStore(ttl)
	return nil
}

type DBSessionStore struct {
	ttl time.Duration
}

func NewDBSessionStore(ttl time.Duration) *DBSessionStore {
	return &DBSessionStore{ttl: ttl}
}

func (s *DBSessionStore) Create(ctx context.Context, userID int64) (string, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := db.GetWriteDB(ctx).Create(session).Error; err != nil {
		return "", fmt.Errorf("%w: creating session: %v", ErrInternal, err)
	}
	return session.Token, nil
}

func (s *DBSessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrAuth
	}
	var session models.Session
	err := db.GetReadOnlyDB(ctx).Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrAuth
	}
	if err != nil {
		return 0, fmt.Errorf("%w: resolving session: %v", ErrInternal, err)
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.Destroy(ctx, token)
		return 0, ErrAuth
	}
	return session.UserID, nil
}

func (s *DBSessionStore) Destroy(ctx context.Context, token string) error {
	// Idempotent: deleting an absent token is not an error.
	err := db.GetWriteDB(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
	if err != nil {
		return fmt.Errorf("%w: destroying session: %v", ErrInternal, err)
	}
	return nil
}

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisSessionStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	err := s.client.Set(ctx, sessionKey(token), strconv.FormatInt(userID, 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("%w: creating session: %v", ErrInternal, err)
	}
	return token, nil
}

func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrAuth
	}
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return 0, ErrAuth
	}
	if err != nil {
		return 0, fmt.Errorf("%w: resolving session: %v", ErrInternal, err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrAuth
	}
	return userID, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%w: destroying session: %v", ErrInternal, err)
	}
	return nil
}
