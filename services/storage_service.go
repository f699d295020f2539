package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/shubhamjhade/Social-Media-app/config"
)

// InterfaceStorageService defines the file storage service interface
type InterfaceStorageService interface {
	// SaveUpload 校验并保存上传文件，返回存储文件名
	SaveUpload(file *multipart.FileHeader) (string, error)
	// FilePath 返回存储文件名对应的磁盘路径
	FilePath(filename string) string
}

// StorageService 本地磁盘文件存储。
// 保存后的文件通过静态路由 /uploads/<文件名> 访问
type StorageService struct {
	Config *config.Config
}

// NewStorageService 创建一个新的文件存储服务
func NewStorageService(cfg *config.Config) InterfaceStorageService {
	return &StorageService{Config: cfg}
}

// SaveUpload 校验并保存上传文件
func (s *StorageService) SaveUpload(file *multipart.FileHeader) (string, error) {
	if file.Size > s.Config.MaxUploadSize {
		return "", ErrUploadTooLarge
	}

	if err := os.MkdirAll(s.Config.UploadDir, 0755); err != nil {
		return "", err
	}

	// 存储文件名: image-<uuid><原扩展名>
	filename := "image-" + uuid.NewString() + filepath.Ext(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(s.FilePath(filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}

// FilePath 返回存储文件名对应的磁盘路径
func (s *StorageService) FilePath(filename string) string {
	return filepath.Join(s.Config.UploadDir, filename)
}
