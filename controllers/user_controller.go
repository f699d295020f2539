package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubhamjhade/Social-Media-app/internal/error/response"
	"github.com/shubhamjhade/Social-Media-app/middleware"
	"github.com/shubhamjhade/Social-Media-app/services"
	"github.com/shubhamjhade/Social-Media-app/services/container"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	UpdateProfile()
}

// UserController 用户资料控制器
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Username string `json:"username" example:"alice2"`
	Mobile   string `json:"mobile" example:"9876543210"`
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "updateProfile":
			controller.UpdateProfile()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. UpdateProfile 更新个人资料
// @Summary      更新个人资料
// @Description  修改用户名和手机号；改名会重新检查唯一性，历史帖子保留发帖时的用户名快照
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "更新的资料"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/user/update [put]
// @Security     SessionCookie
func (c *UserController) UpdateProfile() {
	var req UpdateProfileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	userID, _, _ := middleware.CurrentPrincipal(c.Ctx)

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateProfile(userID, strings.TrimSpace(req.Username), strings.TrimSpace(req.Mobile))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	// 会话中缓存的用户名需要同步刷新
	if token, exists := c.Ctx.Get(middleware.ContextTokenKey); exists {
		sessionService := c.Container.GetService("session").(services.InterfaceSessionService)
		if err := sessionService.Refresh(token.(string), user); err != nil {
			response.ServerError(c.Ctx)
			return
		}
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
