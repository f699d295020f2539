package models

import "time"

// Post represents a feed post
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	Image   string `gorm:"type:varchar(255)" json:"image"` // 上传图片的存储文件名，可为空

	// 作者信息。Username 在发帖时冗余保存，之后改名不回填
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Username string `gorm:"type:varchar(50)" json:"username"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Likes    []PostLike `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	Comments []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// PostLike 点赞记录。(post_id, user_id) 唯一索引保证同一用户对同一帖子最多点赞一次，
// 点赞/取消通过删除或插入单行完成，依赖数据库约束保证并发下不丢更新
type PostLike struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"uniqueIndex:idx_post_user;not null" json:"post_id"`
	UserID uint `gorm:"uniqueIndex:idx_post_user;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

// LikedBy 判断指定用户是否已点赞该帖子
func (p *Post) LikedBy(userID uint) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}
