package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/models"
	"github.com/shubhamjhade/Social-Media-app/utils"
)

const sessionKeyPrefix = "session:"

// Session 会话记录，除这三个字段外不向请求处理器暴露任何账号信息
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// InterfaceSessionService defines the session service interface
type InterfaceSessionService interface {
	// Create 为账号签发不透明令牌并写入会话存储
	Create(user *models.User) (string, error)
	// Read 按令牌读取会话，不存在或已过期返回 ErrSessionNotFound
	Read(token string) (*Session, error)
	// Refresh 用账号当前信息覆盖令牌对应的会话记录
	Refresh(token string, user *models.User) error
	// Destroy 销毁令牌对应的会话，令牌不存在时不报错
	Destroy(token string) error
}

// RedisSessionService 基于Redis的会话存储，过期由Redis TTL负责
type RedisSessionService struct {
	Client *redis.Client
	Ctx    context.Context
	TTL    time.Duration
}

// NewRedisSessionService 创建一个新的Redis会话服务
func NewRedisSessionService(cfg *config.Config) *RedisSessionService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	return &RedisSessionService{
		Client: client,
		Ctx:    context.Background(),
		TTL:    cfg.SessionTTL(),
	}
}

// Create 签发令牌并写入会话
func (s *RedisSessionService) Create(user *models.User) (string, error) {
	token := utils.NewSessionToken()
	if err := s.write(token, &Session{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}); err != nil {
		return "", err
	}
	return token, nil
}

// Read 按令牌读取会话
func (s *RedisSessionService) Read(token string) (*Session, error) {
	val, err := s.Client.Get(s.Ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Refresh 覆盖会话记录，TTL重新计时
func (s *RedisSessionService) Refresh(token string, user *models.User) error {
	return s.write(token, &Session{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
}

// Destroy 销毁会话
func (s *RedisSessionService) Destroy(token string) error {
	return s.Client.Del(s.Ctx, sessionKeyPrefix+token).Err()
}

func (s *RedisSessionService) write(token string, sess *Session) error {
	jsonValue, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, sessionKeyPrefix+token, jsonValue, s.TTL).Err()
}

// memorySessionEntry 内存会话条目
type memorySessionEntry struct {
	session   Session
	expiresAt time.Time
}

// MemorySessionService 进程内会话存储。
// Redis不可用时的降级实现，同时用于测试；过期在读取时惰性判断
type MemorySessionService struct {
	mu       sync.RWMutex
	sessions map[string]memorySessionEntry
	ttl      time.Duration
}

// NewMemorySessionService 创建一个新的内存会话服务
func NewMemorySessionService(ttl time.Duration) *MemorySessionService {
	return &MemorySessionService{
		sessions: make(map[string]memorySessionEntry),
		ttl:      ttl,
	}
}

// Create 签发令牌并写入会话
func (s *MemorySessionService) Create(user *models.User) (string, error) {
	token := utils.NewSessionToken()
	s.mu.Lock()
	s.sessions[token] = memorySessionEntry{
		session: Session{
			UserID:   user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		},
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return token, nil
}

// Read 按令牌读取会话
func (s *MemorySessionService) Read(token string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	sess := entry.session
	return &sess, nil
}

// Refresh 覆盖会话记录，TTL重新计时
func (s *MemorySessionService) Refresh(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[token] = memorySessionEntry{
		session: Session{
			UserID:   user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		},
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Destroy 销毁会话
func (s *MemorySessionService) Destroy(token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
