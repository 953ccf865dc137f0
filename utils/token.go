package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken 生成不可猜测的会话令牌（基于crypto/rand的UUIDv4）
func GenerateSessionToken() string {
	return uuid.New().String()
}
