package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/internal/error/response"
	"github.com/shubhamjhade/Social-Media-app/middleware"
	"github.com/shubhamjhade/Social-Media-app/services"
	"github.com/shubhamjhade/Social-Media-app/services/container"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Register()
	Login()
	Logout()
	Me()
}

// AuthController 处理注册、登录与会话
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" form:"username" binding:"required" example:"alice"`
	Password  string `json:"password" form:"password" binding:"required" example:"pw1"`
	FullName  string `json:"full_name" form:"fullName" example:"Alice Sharma"`
	CollegeID string `json:"college_id" form:"collegeId" example:"CS2021042"`
	Mobile    string `json:"mobile" form:"mobile" example:"9876543210"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"shubham"`
	Password string `json:"password" form:"password" binding:"required" example:"123"`
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "me":
			controller.Me()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. Register 注册账号
// @Summary      注册账号
// @Description  创建一个新账号，初始为待审批状态，需管理员审批后才能登录
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBind(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	// 数据预处理
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Mobile = strings.TrimSpace(req.Mobile)

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Register(req.Username, req.Password, req.FullName, req.CollegeID, req.Mobile)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"full_name":   user.FullName,
		"is_approved": user.IsApproved,
	})
}

// 2. Login 登录
// @Summary      登录
// @Description  校验凭证并建立会话；待审批账号返回独立的错误类别
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录凭证"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response  "Invalid username or password"
// @Failure      403  {object}  response.Response  "Account pending approval"
// @Router       /login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBind(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid request parameters")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	// 建立会话，令牌通过Cookie传递
	sessionService := c.Container.GetService("session").(services.InterfaceSessionService)
	token, err := sessionService.Create(user)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	cfg := c.Container.GetService("config").(*config.Config)
	c.Ctx.SetCookie(cfg.SessionCookieName, token, int(cfg.SessionTTL().Seconds()), "/", "", false, true)

	response.Success(c.Ctx, gin.H{
		"user_id":   user.ID,
		"username":  user.Username,
		"full_name": user.FullName,
		"mobile":    user.Mobile,
		"is_admin":  user.IsAdmin,
	})
}

// 3. Logout 退出登录
// @Summary      退出登录
// @Description  销毁当前会话并清除Cookie，未登录时也返回成功
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /logout [post]
func (c *AuthController) Logout() {
	cfg := c.Container.GetService("config").(*config.Config)

	token, err := c.Ctx.Cookie(cfg.SessionCookieName)
	if err == nil && token != "" {
		sessionService := c.Container.GetService("session").(services.InterfaceSessionService)
		if err := sessionService.Destroy(token); err != nil {
			response.ServerError(c.Ctx)
			return
		}
	}

	// 清除Cookie
	c.Ctx.SetCookie(cfg.SessionCookieName, "", -1, "/", "", false, true)
	response.Success(c.Ctx, nil)
}

// 4. Me 获取当前登录用户
// @Summary      获取当前登录用户
// @Description  返回会话对应的账号信息，供前端初始化使用
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/me [get]
// @Security     SessionCookie
func (c *AuthController) Me() {
	userID, _, _ := middleware.CurrentPrincipal(c.Ctx)

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(userID)
	if err != nil {
		// 账号已被删除的会话视为未登录
		if errors.Is(err, services.ErrUserNotFound) {
			response.Unauthenticated(c.Ctx)
			return
		}
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"user_id":    user.ID,
		"username":   user.Username,
		"full_name":  user.FullName,
		"college_id": user.CollegeID,
		"mobile":     user.Mobile,
		"is_admin":   user.IsAdmin,
	})
}
