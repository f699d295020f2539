package models

import "time"

// Comment 帖子评论，按创建时间追加
type Comment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"index;not null" json:"post_id"`

	// 评论者信息。Username 与帖子一样在写入时冗余保存
	UserID   uint   `gorm:"not null" json:"user_id"`
	Username string `gorm:"type:varchar(50)" json:"username"`

	Text string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
}
