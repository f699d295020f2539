package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubhamjhade/Social-Media-app/internal/error/response"
	"github.com/shubhamjhade/Social-Media-app/middleware"
	"github.com/shubhamjhade/Social-Media-app/models"
	"github.com/shubhamjhade/Social-Media-app/services"
	"github.com/shubhamjhade/Social-Media-app/services/container"
)

// InterfacePostController 定义帖子控制器接口
type InterfacePostController interface {
	GetFeed()
	GetMyPosts()
	CreatePost()
	DeletePost()
	ToggleLike()
	AddComment()
	DeleteComment()
}

// PostController 帖子控制器
type PostController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPostController 创建一个新的帖子控制器
func NewPostController(ctx *gin.Context, container *container.ServiceContainer) *PostController {
	return &PostController{
		Ctx:       ctx,
		Container: container,
	}
}

// AddCommentRequest 追加评论请求
type AddCommentRequest struct {
	Text string `json:"text" binding:"required" example:"Nice post!"`
}

// HandlePostFunc 返回一个处理帖子请求的Gin处理函数
func HandlePostFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPostController(ctx, container)

		switch method {
		case "getFeed":
			controller.GetFeed()
		case "getMyPosts":
			controller.GetMyPosts()
		case "createPost":
			controller.CreatePost()
		case "deletePost":
			controller.DeletePost()
		case "toggleLike":
			controller.ToggleLike()
		case "addComment":
			controller.AddComment()
		case "deleteComment":
			controller.DeleteComment()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// postResponse 构造帖子的响应体。
// 点赞以数量和当前用户是否已点赞的形式返回，不暴露点赞者ID列表
func postResponse(post *models.Post, viewerID uint) gin.H {
	comments := make([]gin.H, 0, len(post.Comments))
	for i := range post.Comments {
		comment := &post.Comments[i]
		comments = append(comments, gin.H{
			"id":         comment.ID,
			"user_id":    comment.UserID,
			"username":   comment.Username,
			"text":       comment.Text,
			"created_at": comment.CreatedAt,
		})
	}

	return gin.H{
		"id":         post.ID,
		"content":    post.Content,
		"image":      post.Image,
		"user_id":    post.UserID,
		"username":   post.Username,
		"created_at": post.CreatedAt,
		"likes":      len(post.Likes),
		"user_liked": post.LikedBy(viewerID),
		"comments":   comments,
	}
}

// parseIDParam 解析URL中的数字ID参数
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		response.ParamError(ctx, "无效的ID参数")
		return 0, false
	}
	return uint(id), true
}

// 1. GetFeed 获取帖子流
// @Summary      获取帖子流
// @Description  按创建时间倒序返回帖子，附带点赞数、当前用户是否已点赞和全部评论
// @Tags         Post
// @Produce      json
// @Param        page query int false "页码, 默认为1"
// @Param        page_size query int false "每页条数, 默认为20"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/posts [get]
// @Security     SessionCookie
func (c *PostController) GetFeed() {
	// 获取分页参数
	var query models.PaginationQuery
	_ = c.Ctx.ShouldBindQuery(&query)
	query.Normalize()

	viewerID, _, _ := middleware.CurrentPrincipal(c.Ctx)

	postService := c.Container.GetService("post").(services.InterfacePostService)
	posts, total, err := postService.GetFeed(query.Page, query.PageSize)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	postResponses := make([]gin.H, 0, len(posts))
	for i := range posts {
		postResponses = append(postResponses, postResponse(&posts[i], viewerID))
	}

	response.Success(c.Ctx, gin.H{
		"total":     total,
		"page":      query.Page,
		"page_size": query.PageSize,
		"data":      postResponses,
	})
}

// 2. GetMyPosts 获取当前用户的帖子
// @Summary      获取当前用户的帖子
// @Description  返回当前登录用户发布的全部帖子，最新的在前
// @Tags         Post
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profile [get]
// @Security     SessionCookie
func (c *PostController) GetMyPosts() {
	viewerID, _, _ := middleware.CurrentPrincipal(c.Ctx)

	postService := c.Container.GetService("post").(services.InterfacePostService)
	posts, err := postService.GetUserPosts(viewerID)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	postResponses := make([]gin.H, 0, len(posts))
	for i := range posts {
		postResponses = append(postResponses, postResponse(&posts[i], viewerID))
	}

	response.Success(c.Ctx, gin.H{
		"total": len(postResponses),
		"data":  postResponses,
	})
}

// 3. CreatePost 发布帖子
// @Summary      发布帖子
// @Description  multipart表单发布帖子，content为正文，image为可选图片(最大10MB)
// @Tags         Post
// @Accept       multipart/form-data
// @Produce      json
// @Param        content formData string true "帖子正文"
// @Param        image formData file false "图片"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Router       /posting [post]
// @Security     SessionCookie
func (c *PostController) CreatePost() {
	content := strings.TrimSpace(c.Ctx.PostForm("content"))
	if content == "" {
		response.ParamError(c.Ctx, "帖子正文不能为空")
		return
	}

	// 图片为可选字段
	var filename string
	file, err := c.Ctx.FormFile("image")
	if err == nil && file != nil {
		storageService := c.Container.GetService("storage").(services.InterfaceStorageService)
		filename, err = storageService.SaveUpload(file)
		if err != nil {
			respondServiceError(c.Ctx, err)
			return
		}
	}

	userID, username, _ := middleware.CurrentPrincipal(c.Ctx)

	postService := c.Container.GetService("post").(services.InterfacePostService)
	post, err := postService.CreatePost(userID, username, content, filename)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, postResponse(post, userID))
}

// 4. DeletePost 删除帖子
// @Summary      删除帖子
// @Description  仅帖子作者或管理员可删除
// @Tags         Post
// @Produce      json
// @Param        id path int true "帖子ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /delete/{id} [delete]
// @Security     SessionCookie
func (c *PostController) DeletePost() {
	postID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	userID, _, isAdmin := middleware.CurrentPrincipal(c.Ctx)

	postService := c.Container.GetService("post").(services.InterfacePostService)
	if err := postService.DeletePost(postID, userID, isAdmin); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// 5. ToggleLike 点赞开关
// @Summary      点赞开关
// @Description  已点赞则取消，未点赞则添加，返回最新点赞数和当前状态
// @Tags         Post
// @Produce      json
// @Param        id path int true "帖子ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /like/{id} [get]
// @Security     SessionCookie
func (c *PostController) ToggleLike() {
	postID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	userID, _, _ := middleware.CurrentPrincipal(c.Ctx)

	postService := c.Container.GetService("post").(services.InterfacePostService)
	likes, liked, err := postService.ToggleLike(postID, userID)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"post_id":    postID,
		"likes":      likes,
		"user_liked": liked,
	})
}

// 6. AddComment 追加评论
// @Summary      追加评论
// @Description  向帖子追加一条评论
// @Tags         Post
// @Accept       json
// @Produce      json
// @Param        postId path int true "帖子ID"
// @Param        request body AddCommentRequest true "评论内容"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /comment/{postId} [post]
// @Security     SessionCookie
func (c *PostController) AddComment() {
	postID, ok := parseIDParam(c.Ctx, "postId")
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	userID, username, _ := middleware.CurrentPrincipal(c.Ctx)

	postService := c.Container.GetService("post").(services.InterfacePostService)
	comment, err := postService.AddComment(postID, userID, username, req.Text)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, gin.H{
		"id":         comment.ID,
		"post_id":    comment.PostID,
		"user_id":    comment.UserID,
		"username":   comment.Username,
		"text":       comment.Text,
		"created_at": comment.CreatedAt,
	})
}

// 7. DeleteComment 删除评论
// @Summary      删除评论
// @Description  仅评论作者或管理员可删除
// @Tags         Post
// @Produce      json
// @Param        postId path int true "帖子ID"
// @Param        commentId path int true "评论ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /comment/{postId}/{commentId}/delete [delete]
// @Security     SessionCookie
func (c *PostController) DeleteComment() {
	postID, ok := parseIDParam(c.Ctx, "postId")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c.Ctx, "commentId")
	if !ok {
		return
	}

	userID, _, isAdmin := middleware.CurrentPrincipal(c.Ctx)

	postService := c.Container.GetService("post").(services.InterfacePostService)
	if err := postService.DeleteComment(postID, commentID, userID, isAdmin); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
