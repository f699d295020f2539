package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTooManyRequests: "请求频率过高",
	ErrDatabase:        "数据库错误",

	// 认证与授权相关错误码
	ErrUnauthenticated:    "未登录或会话已失效",
	ErrForbidden:          "权限不足",
	ErrInvalidCredentials: "用户名或密码错误",
	ErrAccountPending:     "账号待审批，请等待管理员通过",

	// 用户相关错误码
	ErrUserNotFound:  "用户不存在",
	ErrUsernameTaken: "用户名已被占用",

	// 帖子相关错误码
	ErrPostNotFound:    "帖子不存在",
	ErrCommentNotFound: "评论不存在",

	// 上传相关错误码
	ErrUploadTooLarge: "上传文件超过大小限制",
	ErrUploadFailed:   "上传文件保存失败",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrDatabase:        StatusInternalServerError,

	// 认证与授权相关错误码
	ErrUnauthenticated:    StatusUnauthorized,
	ErrForbidden:          StatusForbidden,
	ErrInvalidCredentials: StatusUnauthorized,
	ErrAccountPending:     StatusForbidden,

	// 用户相关错误码
	ErrUserNotFound:  StatusNotFound,
	ErrUsernameTaken: StatusBadRequest,

	// 帖子相关错误码
	ErrPostNotFound:    StatusNotFound,
	ErrCommentNotFound: StatusNotFound,

	// 上传相关错误码
	ErrUploadTooLarge: StatusRequestEntityTooLarge,
	ErrUploadFailed:   StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
