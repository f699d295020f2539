package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/controllers"
	_ "github.com/shubhamjhade/Social-Media-app/docs"
	"github.com/shubhamjhade/Social-Media-app/middleware"
	"github.com/shubhamjhade/Social-Media-app/services"
	"github.com/shubhamjhade/Social-Media-app/services/container"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件，前端SPA跨域访问需要携带Cookie
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码；静态文件和文档路由除外
	r.Use(func(c *gin.Context) {
		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/uploads") && !strings.HasPrefix(path, "/swagger") {
			c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
		c.Next()
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化认证中间件
	middleware.InitAuthMiddleware(cfg, serviceContainer.GetService("session").(services.InterfaceSessionService))

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	// 上传图片的静态访问路由
	r.Static("/uploads", cfg.UploadDir)

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 注册公共路由
	registerPublicRoutes(r, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(r, container)
	// 注册管理员路由
	registerAdminRoutes(r, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 健康检查
	healthController := controllers.NewHealthCheckController()
	r.GET("/api/ping", healthController.Ping)

	// 注册和登录挂IP限流，防止凭证爆破
	authLimiter := middleware.IPRateLimiter(5, 20)
	r.POST("/register", authLimiter, controllers.HandleAuthFunc(container, "register"))
	r.POST("/login", authLimiter, controllers.HandleAuthFunc(container, "login"))

	// 退出登录同时支持浏览器导航(GET)和API调用(POST)
	r.GET("/logout", controllers.HandleAuthFunc(container, "logout"))
	r.POST("/logout", controllers.HandleAuthFunc(container, "logout"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := r.Group("/")
	auth.Use(middleware.RequireLogin())

	// 当前用户
	auth.GET("/api/me", controllers.HandleAuthFunc(container, "me"))
	auth.PUT("/api/user/update", controllers.HandleUserFunc(container, "updateProfile"))

	// 帖子流，旧版入口 "/" 与API入口返回相同数据
	auth.GET("/", controllers.HandlePostFunc(container, "getFeed"))
	auth.GET("/api/posts", controllers.HandlePostFunc(container, "getFeed"))
	auth.GET("/profile", controllers.HandlePostFunc(container, "getMyPosts"))

	// 发帖(multipart表单，可选图片)
	auth.POST("/posting", controllers.HandlePostFunc(container, "createPost"))

	// 删除帖子同时支持浏览器导航(GET)和API调用(DELETE)
	auth.GET("/delete/:id", controllers.HandlePostFunc(container, "deletePost"))
	auth.DELETE("/delete/:id", controllers.HandlePostFunc(container, "deletePost"))

	// 点赞开关
	auth.GET("/like/:id", controllers.HandlePostFunc(container, "toggleLike"))

	// 评论
	auth.POST("/comment/:postId", controllers.HandlePostFunc(container, "addComment"))
	auth.GET("/comment/:postId/:commentId/delete", controllers.HandlePostFunc(container, "deleteComment"))
	auth.DELETE("/comment/:postId/:commentId/delete", controllers.HandlePostFunc(container, "deleteComment"))
}

// registerAdminRoutes 注册管理员路由
func registerAdminRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 管理员路由需要先认证再校验管理员角色
	admin := r.Group("/")
	admin.Use(middleware.RequireLogin(), middleware.RequireAdmin())

	// 旧版入口与API入口返回相同数据
	admin.GET("/admin", controllers.HandleAdminFunc(container, "getUsers"))
	admin.GET("/api/admin/users", controllers.HandleAdminFunc(container, "getUsers"))

	admin.POST("/admin/approve/:id", controllers.HandleAdminFunc(container, "approveUser"))
	admin.POST("/api/admin/approve/:id", controllers.HandleAdminFunc(container, "approveUser"))

	admin.DELETE("/api/admin/user/:id", controllers.HandleAdminFunc(container, "deleteUser"))
}
