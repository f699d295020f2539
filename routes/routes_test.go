package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/models"
	"github.com/shubhamjhade/Social-Media-app/services"
)

// newTestServer 组装一个完整的服务栈：内存sqlite + 内存会话存储
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.PostLike{}, &models.Comment{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	cfg := &config.Config{
		EnvType:           "LOCAL",
		SessionTTLHours:   1,
		SessionCookieName: "session_id",
		UploadDir:         t.TempDir(),
		MaxUploadSize:     10 * 1024 * 1024,
		OwnerUsername:     "shubham",
		OwnerPassword:     "123",
	}

	// 启动时的站长账号恢复
	if err := services.NewUserService(db, cfg).ReconcileOwner(); err != nil {
		t.Fatalf("恢复站长账号失败: %v", err)
	}

	// redisClient为nil时容器降级为内存会话存储
	return SetupRouter(db, cfg, nil)
}

// apiClient 带Cookie的测试客户端，模拟一个浏览器会话
type apiClient struct {
	t      *testing.T
	r      *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *apiClient {
	return &apiClient{t: t, r: r}
}

func (c *apiClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)

	// 记住服务端下发的会话Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session_id" {
			if ck.MaxAge < 0 {
				c.cookie = nil
			} else {
				c.cookie = &http.Cookie{Name: ck.Name, Value: ck.Value}
			}
		}
	}
	return w
}

// postForm 发送multipart表单请求
func (c *apiClient) postForm(path string, fields map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, val := range fields {
		if err := writer.WriteField(key, val); err != nil {
			c.t.Fatalf("写表单字段失败: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		c.t.Fatalf("关闭表单失败: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	return w
}

// decodeData 解析响应信封并返回data字段
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("解析响应失败: %v: %s", err, w.Body.String())
	}
	return envelope.Data
}

func login(t *testing.T, c *apiClient, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	return c.do(http.MethodPost, "/login", gin.H{"username": username, "password": password})
}

// TestRegistrationApprovalLifecycle 覆盖从注册到删号的完整生命周期
func TestRegistrationApprovalLifecycle(t *testing.T) {
	r := newTestServer(t)

	alice := newClient(t, r)
	admin := newClient(t, r)

	// 注册alice，初始为待审批
	w := alice.do(http.MethodPost, "/register", gin.H{
		"username":  "alice",
		"password":  "pw1",
		"full_name": "Alice Sharma",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("注册期望201，实际 %d: %s", w.Code, w.Body.String())
	}
	registerData := decodeData(t, w)
	if approved, _ := registerData["is_approved"].(bool); approved {
		t.Fatal("新账号不应处于已审批状态")
	}
	aliceID := uint(registerData["id"].(float64))

	// 待审批账号登录被拒，403区别于凭证错误的401
	if w := login(t, alice, "alice", "pw1"); w.Code != http.StatusForbidden {
		t.Fatalf("待审批账号登录期望403，实际 %d: %s", w.Code, w.Body.String())
	}

	// 站长登录
	if w := login(t, admin, "shubham", "123"); w.Code != http.StatusOK {
		t.Fatalf("站长登录期望200，实际 %d: %s", w.Code, w.Body.String())
	}

	// 管理面板看到alice在待审批列表
	w = admin.do(http.MethodGet, "/api/admin/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("获取用户列表期望200，实际 %d", w.Code)
	}
	usersData := decodeData(t, w)
	pending, _ := usersData["pending"].([]interface{})
	if len(pending) != 1 {
		t.Fatalf("期望1个待审批用户，实际 %d", len(pending))
	}

	// 审批alice
	w = admin.do(http.MethodPost, fmt.Sprintf("/api/admin/approve/%d", aliceID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("审批期望200，实际 %d: %s", w.Code, w.Body.String())
	}

	// 审批后alice可以登录
	if w := login(t, alice, "alice", "pw1"); w.Code != http.StatusOK {
		t.Fatalf("审批后登录期望200，实际 %d: %s", w.Code, w.Body.String())
	}

	// 发帖
	w = alice.postForm("/posting", map[string]string{"content": "hello"})
	if w.Code != http.StatusCreated {
		t.Fatalf("发帖期望201，实际 %d: %s", w.Code, w.Body.String())
	}
	postData := decodeData(t, w)
	postID := uint(postData["id"].(float64))

	// 帖子流中帖子点赞数为0
	w = alice.do(http.MethodGet, "/api/posts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("获取帖子流期望200，实际 %d", w.Code)
	}
	feedData := decodeData(t, w)
	posts, _ := feedData["data"].([]interface{})
	if len(posts) != 1 {
		t.Fatalf("期望1条帖子，实际 %d", len(posts))
	}
	first := posts[0].(map[string]interface{})
	if likes := first["likes"].(float64); likes != 0 {
		t.Fatalf("初始点赞数期望0，实际 %v", likes)
	}

	// 点赞
	w = alice.do(http.MethodGet, fmt.Sprintf("/like/%d", postID), nil)
	likeData := decodeData(t, w)
	if likeData["likes"].(float64) != 1 || likeData["user_liked"].(bool) != true {
		t.Fatalf("点赞后期望 likes=1 user_liked=true，实际: %v", likeData)
	}

	// 再次点击取消点赞
	w = alice.do(http.MethodGet, fmt.Sprintf("/like/%d", postID), nil)
	likeData = decodeData(t, w)
	if likeData["likes"].(float64) != 0 || likeData["user_liked"].(bool) != false {
		t.Fatalf("取消后期望 likes=0 user_liked=false，实际: %v", likeData)
	}

	// 管理员删除alice账号
	w = admin.do(http.MethodDelete, fmt.Sprintf("/api/admin/user/%d", aliceID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("删除用户期望200，实际 %d: %s", w.Code, w.Body.String())
	}

	// 删号后的登录与凭证错误不可区分
	fresh := newClient(t, r)
	if w := login(t, fresh, "alice", "pw1"); w.Code != http.StatusUnauthorized {
		t.Fatalf("删号后登录期望401，实际 %d: %s", w.Code, w.Body.String())
	}
}

func TestFeedRequiresLogin(t *testing.T) {
	r := newTestServer(t)
	c := newClient(t, r)

	if w := c.do(http.MethodGet, "/api/posts", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("未登录访问帖子流期望401，实际 %d", w.Code)
	}
}

func TestAdminRoutesRejectRegularUser(t *testing.T) {
	r := newTestServer(t)

	admin := newClient(t, r)
	if w := login(t, admin, "shubham", "123"); w.Code != http.StatusOK {
		t.Fatalf("站长登录失败: %d", w.Code)
	}

	// 注册并审批一个普通用户
	w := admin.do(http.MethodPost, "/register", gin.H{"username": "bob", "password": "pw2"})
	if w.Code != http.StatusCreated {
		t.Fatalf("注册失败: %d", w.Code)
	}
	bobID := uint(decodeData(t, w)["id"].(float64))
	if w := admin.do(http.MethodPost, fmt.Sprintf("/api/admin/approve/%d", bobID), nil); w.Code != http.StatusOK {
		t.Fatalf("审批失败: %d", w.Code)
	}

	bob := newClient(t, r)
	if w := login(t, bob, "bob", "pw2"); w.Code != http.StatusOK {
		t.Fatalf("bob登录失败: %d", w.Code)
	}

	// 已登录的普通用户访问管理路由是403
	if w := bob.do(http.MethodGet, "/api/admin/users", nil); w.Code != http.StatusForbidden {
		t.Fatalf("普通用户访问管理路由期望403，实际 %d", w.Code)
	}
	if w := bob.do(http.MethodPost, fmt.Sprintf("/api/admin/approve/%d", bobID), nil); w.Code != http.StatusForbidden {
		t.Fatalf("普通用户审批期望403，实际 %d", w.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r := newTestServer(t)

	c := newClient(t, r)
	if w := login(t, c, "shubham", "123"); w.Code != http.StatusOK {
		t.Fatalf("登录失败: %d", w.Code)
	}

	// 保留令牌副本，退出后用旧令牌访问
	staleCookie := &http.Cookie{Name: c.cookie.Name, Value: c.cookie.Value}

	if w := c.do(http.MethodPost, "/logout", nil); w.Code != http.StatusOK {
		t.Fatalf("退出登录失败: %d", w.Code)
	}

	c.cookie = staleCookie
	if w := c.do(http.MethodGet, "/api/me", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("退出后的令牌期望401，实际 %d", w.Code)
	}
}

func TestProfileUpdateReflectsInSession(t *testing.T) {
	r := newTestServer(t)

	admin := newClient(t, r)
	if w := login(t, admin, "shubham", "123"); w.Code != http.StatusOK {
		t.Fatalf("登录失败: %d", w.Code)
	}

	// 改手机号，用户名保持不变
	w := admin.do(http.MethodPut, "/api/user/update", gin.H{
		"username": "shubham",
		"mobile":   "9876543210",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("更新资料期望200，实际 %d: %s", w.Code, w.Body.String())
	}

	w = admin.do(http.MethodGet, "/api/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("获取当前用户失败: %d", w.Code)
	}
	meData := decodeData(t, w)
	if meData["mobile"].(string) != "9876543210" {
		t.Fatalf("资料未更新: %v", meData)
	}
}

func TestCommentEndpoints(t *testing.T) {
	r := newTestServer(t)

	admin := newClient(t, r)
	if w := login(t, admin, "shubham", "123"); w.Code != http.StatusOK {
		t.Fatalf("登录失败: %d", w.Code)
	}

	w := admin.postForm("/posting", map[string]string{"content": "first post"})
	if w.Code != http.StatusCreated {
		t.Fatalf("发帖失败: %d", w.Code)
	}
	postID := uint(decodeData(t, w)["id"].(float64))

	// 追加评论
	w = admin.do(http.MethodPost, fmt.Sprintf("/comment/%d", postID), gin.H{"text": "nice"})
	if w.Code != http.StatusCreated {
		t.Fatalf("评论期望201，实际 %d: %s", w.Code, w.Body.String())
	}
	commentID := uint(decodeData(t, w)["id"].(float64))

	// 空评论被拒
	w = admin.do(http.MethodPost, fmt.Sprintf("/comment/%d", postID), gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("空评论期望400，实际 %d", w.Code)
	}

	// 删除评论
	w = admin.do(http.MethodDelete, fmt.Sprintf("/comment/%d/%d/delete", postID, commentID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("删除评论期望200，实际 %d: %s", w.Code, w.Body.String())
	}

	// 评论不存在
	w = admin.do(http.MethodDelete, fmt.Sprintf("/comment/%d/%d/delete", postID, commentID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("删除不存在的评论期望404，实际 %d", w.Code)
	}
}

func TestDeleteMissingPost(t *testing.T) {
	r := newTestServer(t)

	c := newClient(t, r)
	if w := login(t, c, "shubham", "123"); w.Code != http.StatusOK {
		t.Fatalf("登录失败: %d", w.Code)
	}

	if w := c.do(http.MethodDelete, "/delete/9999", nil); w.Code != http.StatusNotFound {
		t.Fatalf("删除不存在的帖子期望404，实际 %d", w.Code)
	}
}
