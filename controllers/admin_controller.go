package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubhamjhade/Social-Media-app/internal/error/response"
	"github.com/shubhamjhade/Social-Media-app/models"
	"github.com/shubhamjhade/Social-Media-app/services"
	"github.com/shubhamjhade/Social-Media-app/services/container"
)

// InterfaceAdminController 定义管理员控制器接口
type InterfaceAdminController interface {
	GetUsers()
	ApproveUser()
	DeleteUser()
}

// AdminController 管理员控制器
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理员控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "approveUser":
			controller.ApproveUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// userSummaries 构造用户列表的响应体，不返回密码等敏感字段
func userSummaries(users []models.User) []gin.H {
	summaries := make([]gin.H, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"full_name":  user.FullName,
			"college_id": user.CollegeID,
			"mobile":     user.Mobile,
			"created_at": user.CreatedAt,
		})
	}
	return summaries
}

// 1. GetUsers 获取用户列表
// @Summary      获取用户列表
// @Description  返回待审批用户和已审批的普通用户两个列表
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/admin/users [get]
// @Security     SessionCookie
func (c *AdminController) GetUsers() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)

	pending, err := userService.GetPendingUsers()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	active, err := userService.GetActiveUsers()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pending": userSummaries(pending),
		"active":  userSummaries(active),
	})
}

// 2. ApproveUser 审批用户
// @Summary      审批用户
// @Description  将待审批账号置为已审批，审批后账号即可登录
// @Tags         Admin
// @Produce      json
// @Param        id path int true "用户ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admin/approve/{id} [post]
// @Security     SessionCookie
func (c *AdminController) ApproveUser() {
	userID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.ApproveUser(userID); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// 3. DeleteUser 删除用户
// @Summary      删除用户
// @Description  删除指定账号，账号已发布的帖子保留发帖时的用户名快照
// @Tags         Admin
// @Produce      json
// @Param        id path int true "用户ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admin/user/{id} [delete]
// @Security     SessionCookie
func (c *AdminController) DeleteUser() {
	userID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DeleteUser(userID); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
