package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/shubhamjhade/Social-Media-app/utils"
)

// User represents a registered account.
// 新注册的用户默认为待审批状态(IsApproved=false)，由管理员审批后才能登录。
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON

	// Personal details
	FullName  string `gorm:"type:varchar(100)" json:"full_name"`
	CollegeID string `gorm:"type:varchar(50)" json:"college_id"`
	Mobile    string `gorm:"type:varchar(20)" json:"mobile"`

	// System flags
	IsAdmin    bool `gorm:"default:false" json:"is_admin"`
	IsApproved bool `gorm:"default:false" json:"is_approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
