package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/models"
	"github.com/shubhamjhade/Social-Media-app/utils"
)

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	Register(username, password, fullName, collegeID, mobile string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateProfile(id uint, username, mobile string) (*models.User, error)
	GetPendingUsers() ([]models.User, error)
	GetActiveUsers() ([]models.User, error)
	ApproveUser(id uint) error
	DeleteUser(id uint) error
	ReconcileOwner() error
}

// UserService 提供账号相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Register 注册新账号，初始为待审批状态
func (s *UserService) Register(username, password, fullName, collegeID, mobile string) (*models.User, error) {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	user := &models.User{
		Username:   username,
		Password:   password, // 哈希在模型的 BeforeSave 钩子中完成
		FullName:   fullName,
		CollegeID:  collegeID,
		Mobile:     mobile,
		IsAdmin:    false,
		IsApproved: false,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// 2 Authenticate 校验凭证并检查审批状态。
// 凭证不匹配与账号不存在返回同一个错误，待审批账号返回独立的错误
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsApproved {
		return nil, ErrAccountPending
	}
	return &user, nil
}

// 3 GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 4 UpdateProfile 更新用户名和手机号。
// 已发布帖子和评论上的冗余用户名保持写入时的快照，不随改名回填
func (s *UserService) UpdateProfile(id uint, username, mobile string) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if username != "" && username != user.Username {
		// 改名需要重新检查唯一性
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ? AND id != ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
		updates["username"] = username
	}
	if mobile != "" {
		updates["mobile"] = mobile
	}

	if len(updates) > 0 {
		if err := s.DB.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetUserByID(id)
}

// 5 GetPendingUsers 获取待审批用户列表
func (s *UserService) GetPendingUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("is_approved = ?", false).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// 6 GetActiveUsers 获取已审批的普通用户列表（不含管理员）
func (s *UserService) GetActiveUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("is_approved = ? AND is_admin = ?", true, false).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// 7 ApproveUser 审批通过，待审批到已审批是单向迁移
func (s *UserService) ApproveUser(id uint) error {
	result := s.DB.Model(&models.User{}).Where("id = ?", id).Update("is_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// 8 DeleteUser 删除账号。
// 帖子和评论不随账号删除，作者名保留写入时的快照
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(user).Error
}

// 9 ReconcileOwner 进程启动时强制恢复站长账号。
// 无论此前记录被如何篡改或删除，站长始终是已审批的管理员，
// 密码也重置为配置值，防止被锁在系统之外
func (s *UserService) ReconcileOwner() error {
	hashedPassword, err := utils.HashPassword(s.Config.OwnerPassword)
	if err != nil {
		return err
	}

	var owner models.User
	err = s.DB.Where("username = ?", s.Config.OwnerUsername).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		owner = models.User{
			Username:   s.Config.OwnerUsername,
			Password:   hashedPassword,
			FullName:   "Owner " + s.Config.OwnerUsername,
			IsAdmin:    true,
			IsApproved: true,
		}
		return s.DB.Create(&owner).Error
	}
	if err != nil {
		return err
	}

	return s.DB.Model(&owner).Updates(map[string]interface{}{
		"password":    hashedPassword,
		"is_admin":    true,
		"is_approved": true,
	}).Error
}
