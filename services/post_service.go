package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/models"
)

// InterfacePostService defines the post service interface
type InterfacePostService interface {
	GetFeed(page, pageSize int) ([]models.Post, int64, error)
	GetUserPosts(userID uint) ([]models.Post, error)
	GetPostByID(id uint) (*models.Post, error)
	CreatePost(userID uint, username, content, image string) (*models.Post, error)
	DeletePost(postID, actorID uint, actorIsAdmin bool) error
	ToggleLike(postID, userID uint) (int64, bool, error)
	AddComment(postID, userID uint, username, text string) (*models.Comment, error)
	DeleteComment(postID, commentID, actorID uint, actorIsAdmin bool) error
}

// PostService 提供帖子相关的服务
type PostService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPostService 创建一个新的帖子服务
func NewPostService(db *gorm.DB, cfg *config.Config) InterfacePostService {
	return &PostService{
		DB:     db,
		Config: cfg,
	}
}

// withRelations 预加载点赞和按时间排序的评论
func (s *PostService) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Likes").Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.created_at ASC, comments.id ASC")
	})
}

// 1 GetFeed 获取帖子流，最新的在前，支持分页
func (s *PostService) GetFeed(page, pageSize int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := s.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.withRelations(s.DB).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(pageSize).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// 2 GetUserPosts 获取指定用户的全部帖子，最新的在前
func (s *PostService) GetUserPosts(userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := s.withRelations(s.DB).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// 3 GetPostByID 根据ID获取帖子
func (s *PostService) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.withRelations(s.DB).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// 4 CreatePost 发布帖子，作者用户名在此刻冗余保存
func (s *PostService) CreatePost(userID uint, username, content, image string) (*models.Post, error) {
	post := &models.Post{
		Content:  content,
		Image:    image,
		UserID:   userID,
		Username: username,
	}
	if err := s.DB.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// 5 DeletePost 删除帖子。仅作者或管理员可删除，点赞和评论一并清除
func (s *PostService) DeletePost(postID, actorID uint, actorIsAdmin bool) error {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if !actorIsAdmin && post.UserID != actorID {
		return ErrNotOwner
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// 6 ToggleLike 点赞开关。已点赞则取消，未点赞则添加。
// 先尝试删除点赞行，删到了就是取消；没删到则插入，唯一索引挡住并发重复插入，
// 两个并发请求不会把同一个用户记成两次点赞
func (s *PostService) ToggleLike(postID, userID uint) (int64, bool, error) {
	var liked bool

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			// 取消点赞
			liked = false
			return nil
		}

		// 点赞
		like := models.PostLike{PostID: postID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	var count int64
	if err := s.DB.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, false, err
	}
	return count, liked, nil
}

// 7 AddComment 追加评论，单条INSERT，并发追加互不覆盖
func (s *PostService) AddComment(postID, userID uint, username, text string) (*models.Comment, error) {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		Username: username,
		Text:     text,
	}
	if err := s.DB.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// 8 DeleteComment 删除评论。仅评论作者或管理员可删除
func (s *PostService) DeleteComment(postID, commentID, actorID uint, actorIsAdmin bool) error {
	var comment models.Comment
	if err := s.DB.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if !actorIsAdmin && comment.UserID != actorID {
		return ErrNotOwner
	}

	return s.DB.Delete(&comment).Error
}
