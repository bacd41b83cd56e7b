package service

import (
	"errors"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentBodyRequired = errors.New("comment body is required")
)

// CommentService 负责评论的提交、审核与删除。
// 审核状态机只有单向流转：pending -> approved，或任意状态下删除。
type CommentService struct {
	db *gorm.DB
}

// CommentInput represents fields accepted when a visitor submits a comment.
type CommentInput struct {
	PostID uint
	Author string
	Body   string
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Submit 创建一条待审核评论。Approved 恒为 false，访客无法指定。
func (s *CommentService) Submit(input CommentInput) (*db.Comment, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, ErrCommentBodyRequired
	}

	var count int64
	if err := s.db.Model(&db.Post{}).Where("id = ?", input.PostID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := db.Comment{
		PostID:   input.PostID,
		Author:   strings.TrimSpace(input.Author),
		Body:     body,
		Approved: false,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListApproved 返回某篇文章的已审核评论，公开读路径只会走这条查询。
func (s *CommentService) ListApproved(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.
		Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ListPending 返回全站待审核评论（审核队列），按提交时间倒序。
func (s *CommentService) ListPending() ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.
		Preload("Post").
		Where("approved = ?", false).
		Order("created_at desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Approve 将评论标记为已审核。
// 对已审核评论重复调用是无操作的成功；id 不存在时返回 ErrCommentNotFound。
func (s *CommentService) Approve(id uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.Approved {
		return &comment, nil
	}

	if err := s.db.Model(&comment).Update("approved", true).Error; err != nil {
		return nil, err
	}

	comment.Approved = true
	return &comment, nil
}

// Delete 删除评论，任何状态均可。删除不存在的 id 视为成功。
func (s *CommentService) Delete(id uint) error {
	return s.db.Delete(&db.Comment{}, id).Error
}
