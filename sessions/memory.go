package sessions

import (
	"context"
	"sync"
	"time"

	"TaskNestGo/utils"
)

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

type memoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memorySession
}

// NewMemoryStore 创建进程内会话存储，主要用于测试。启动时为空，过期条目在读取时惰性清理
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		ttl:  ttl,
		data: make(map[string]memorySession),
	}
}

func (s *memoryStore) Create(_ context.Context, userID uint) (string, error) {
	token := utils.GenerateSessionToken()
	s.mu.Lock()
	s.data[token] = memorySession{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return token, nil
}

func (s *memoryStore) Get(_ context.Context, token string) (uint, error) {
	s.mu.RLock()
	sess, ok := s.data[token]
	s.mu.RUnlock()
	if !ok {
		return 0, ErrSessionNotFound
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.data, token)
		s.mu.Unlock()
		return 0, ErrSessionNotFound
	}
	return sess.userID, nil
}

func (s *memoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
	return nil
}
