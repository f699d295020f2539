package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/models"
)

// newTestDB 创建内存sqlite数据库。
// 限制为单连接，保证内存库不被连接池拆散，并发用例在池上排队
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

// newTestConfig 测试配置
func newTestConfig() *config.Config {
	return &config.Config{
		EnvType:           "LOCAL",
		SessionTTLHours:   1,
		SessionCookieName: "session_id",
		UploadDir:         "",
		MaxUploadSize:     10 * 1024 * 1024,
		OwnerUsername:     "shubham",
		OwnerPassword:     "123",
	}
}

// multipartHeader 构造一个携带给定内容的上传文件头
func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("创建表单文件失败: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("写入表单文件失败: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("关闭表单失败: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	if err != nil {
		t.Fatalf("构造请求失败: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("解析表单失败: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

// registerApproved 注册并直接审批一个账号
func registerApproved(t *testing.T, svc InterfaceUserService, username, password string) *models.User {
	t.Helper()

	user, err := svc.Register(username, password, "Test "+username, "", "")
	if err != nil {
		t.Fatalf("注册 %s 失败: %v", username, err)
	}
	if err := svc.ApproveUser(user.ID); err != nil {
		t.Fatalf("审批 %s 失败: %v", username, err)
	}
	return user
}
