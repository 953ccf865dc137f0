package services

import (
	"context"
	"errors"

	"TaskNestGo/models"
	"TaskNestGo/sessions"
	"TaskNestGo/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateUsername 用户名已被占用
	ErrDuplicateUsername = errors.New("用户名已存在")
	// ErrInvalidCredentials 凭证错误，不区分用户不存在与密码错误
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrUnauthenticated 未登录或会话已失效
	ErrUnauthenticated = errors.New("未登录或会话已失效")
)

// AuthService 会话认证服务：注册、登录、登出以及会话到用户的解析
type AuthService struct {
	users    storage.UserStore
	sessions sessions.Store
}

// NewAuthService 创建认证服务
func NewAuthService(users storage.UserStore, store sessions.Store) *AuthService {
	return &AuthService{users: users, sessions: store}
}

// Register 注册新用户并直接建立会话，返回用户和会话令牌
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, "", ErrDuplicateUsername
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, "", err
	}

	// bcrypt 自带逐条随机盐
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		// 并发注册时依赖唯一索引兜底
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, "", ErrDuplicateUsername
		}
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 校验凭证并建立新会话，每次登录签发全新令牌
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	// 常数时间比较
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout 销毁会话。幂等：令牌为空或已失效时不报错
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// CurrentUser 将会话令牌解析为用户。有效会话必然对应存在的用户
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
