package services

import "errors"

// 服务层哨兵错误。控制器用 errors.Is 将其映射为统一错误码，
// 保证同一种失败在浏览器跳转和 API 响应两种表现形式下携带相同的错误类别。
var (
	// ErrInvalidCredentials 用户名不存在或密码不匹配
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrAccountPending 凭证匹配但账号尚未通过管理员审批
	ErrAccountPending = errors.New("账号待审批")
	// ErrUsernameTaken 注册或改名时用户名已被占用
	ErrUsernameTaken = errors.New("用户名已被占用")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrPostNotFound 帖子不存在
	ErrPostNotFound = errors.New("帖子不存在")
	// ErrCommentNotFound 评论不存在
	ErrCommentNotFound = errors.New("评论不存在")
	// ErrNotOwner 非作者且非管理员，不允许修改或删除资源
	ErrNotOwner = errors.New("仅作者或管理员可以执行该操作")
	// ErrUploadTooLarge 上传文件超过大小限制
	ErrUploadTooLarge = errors.New("上传文件超过大小限制")
	// ErrSessionNotFound 会话不存在或已过期
	ErrSessionNotFound = errors.New("会话不存在或已过期")
)
