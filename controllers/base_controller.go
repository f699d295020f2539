package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shubhamjhade/Social-Media-app/internal/error/code"
	"github.com/shubhamjhade/Social-Media-app/internal/error/response"
	"github.com/shubhamjhade/Social-Media-app/services"
)

// respondServiceError 将服务层哨兵错误映射为统一错误码响应。
// 浏览器端和API端共用这一映射，保证同一种失败携带相同的错误类别
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Fail(ctx, code.ErrInvalidCredentials, nil)
	case errors.Is(err, services.ErrAccountPending):
		response.Fail(ctx, code.ErrAccountPending, nil)
	case errors.Is(err, services.ErrUsernameTaken):
		response.Fail(ctx, code.ErrUsernameTaken, nil)
	case errors.Is(err, services.ErrUserNotFound):
		response.Fail(ctx, code.ErrUserNotFound, nil)
	case errors.Is(err, services.ErrPostNotFound):
		response.Fail(ctx, code.ErrPostNotFound, nil)
	case errors.Is(err, services.ErrCommentNotFound):
		response.Fail(ctx, code.ErrCommentNotFound, nil)
	case errors.Is(err, services.ErrNotOwner):
		response.Fail(ctx, code.ErrForbidden, nil)
	case errors.Is(err, services.ErrUploadTooLarge):
		response.Fail(ctx, code.ErrUploadTooLarge, nil)
	case errors.Is(err, services.ErrSessionNotFound):
		response.Fail(ctx, code.ErrUnauthenticated, nil)
	default:
		// 持久层等未识别的失败按通用错误返回，不伪装成具体类别
		response.Fail(ctx, code.ErrDatabase, nil)
	}
}
