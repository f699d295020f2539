package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusRequestEntityTooLarge - 413: 请求体过大.
	StatusRequestEntityTooLarge = 413
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase
)

// 认证与授权相关错误码 (101xxx).
const (
	// ErrUnauthenticated - 401: 未登录或会话已失效.
	ErrUnauthenticated int = iota + 101000
	// ErrForbidden - 403: 已登录但权限不足.
	ErrForbidden
	// ErrInvalidCredentials - 401: 用户名或密码错误.
	ErrInvalidCredentials
	// ErrAccountPending - 403: 账号待管理员审批.
	ErrAccountPending
)

// 用户相关错误码 (102xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 102000
	// ErrUsernameTaken - 400: 用户名已被占用.
	ErrUsernameTaken
)

// 帖子相关错误码 (103xxx).
const (
	// ErrPostNotFound - 404: 帖子不存在.
	ErrPostNotFound int = iota + 103000
	// ErrCommentNotFound - 404: 评论不存在.
	ErrCommentNotFound
)

// 上传相关错误码 (104xxx).
const (
	// ErrUploadTooLarge - 413: 上传文件超过大小限制.
	ErrUploadTooLarge int = iota + 104000
	// ErrUploadFailed - 500: 上传文件保存失败.
	ErrUploadFailed
)
