package utils

import "github.com/google/uuid"

// NewSessionToken 生成不可预测的会话令牌
func NewSessionToken() string {
	return uuid.NewString()
}
