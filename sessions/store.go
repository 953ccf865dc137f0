package sessions

import (
	"context"
	"errors"
	"strconv"
	"time"

	"TaskNestGo/utils"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("会话不存在或已过期")

// Store 服务端会话存储：以不透明令牌为键保存用户ID
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, token string) (uint, error)
	Destroy(ctx context.Context, token string) error
}

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 创建基于Redis的会话存储，过期由Redis的TTL负责
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := utils.GenerateSessionToken()
	value := strconv.FormatUint(uint64(userID), 10)
	if err := s.client.Set(ctx, keyPrefix+token, value, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (uint, error) {
	value, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return uint(userID), nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	// 幂等：键不存在时DEL同样成功
	return s.client.Del(ctx, keyPrefix+token).Err()
}
