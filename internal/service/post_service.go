package service

import (
	"errors"
	"strings"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/slug"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostTitleRequired = errors.New("post title is required")
	ErrPostSlugRequired  = errors.New("post slug is required")
	ErrPostSlugInvalid   = errors.New("post slug is invalid")
	ErrPostSlugTaken     = errors.New("post slug is already in use")
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating or updating a post.
// Slug 为空时由标题自动生成；非空时按手动模式清洗。
type PostInput struct {
	Title   string
	Slug    string
	Content string
	Tags    string
	UserID  uint
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// ListAll returns all posts ordered by created time descending.
func (s *PostService) ListAll() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post by id.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by its unique slug.
func (s *PostService) GetBySlug(rawSlug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Where("slug = ?", strings.TrimSpace(rawSlug)).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a new post after slug derivation and content sanitization.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}

	resolved, err := s.resolveSlug(input, title, 0)
	if err != nil {
		return nil, err
	}

	post := db.Post{
		Title:   title,
		Slug:    resolved,
		Content: SanitizeHTML(input.Content),
		Tags:    strings.TrimSpace(input.Tags),
		UserID:  input.UserID,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update applies updates to an existing post. 点赞数不在此处修改，见 SetLikes。
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}

	resolved, err := s.resolveSlug(input, title, existing.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Slug = resolved
	existing.Content = SanitizeHTML(input.Content)
	existing.Tags = strings.TrimSpace(input.Tags)

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// SetLikes 将点赞数写为绝对值。
// 写入是无条件的 last-write-wins：并发点赞者之间不做串行化，
// 后写者覆盖先写者，与线上行为保持一致。负值收敛为零。
func (s *PostService) SetLikes(id uint, likes int) (*db.Post, error) {
	if likes < 0 {
		likes = 0
	}

	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&post).Update("likes", likes).Error; err != nil {
		return nil, err
	}

	post.Likes = likes
	return &post, nil
}

// Delete removes a post and its comments. 删除不存在的 id 视为成功。
func (s *PostService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Post{}, id).Error
	})
}

// resolveSlug 决定最终持久化的 slug：显式给出的按手动模式清洗，
// 缺省时从标题派生，并做唯一性预检。唯一索引仍是最终防线。
func (s *PostService) resolveSlug(input PostInput, title string, selfID uint) (string, error) {
	resolved := strings.TrimSpace(input.Slug)
	if resolved == "" {
		resolved = slug.Normalize(title)
	} else {
		resolved = slug.Clean(resolved)
	}

	if resolved == "" {
		return "", ErrPostSlugRequired
	}
	if !slug.Valid(resolved) {
		return "", ErrPostSlugInvalid
	}

	var count int64
	query := s.db.Model(&db.Post{}).Where("slug = ?", resolved)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrPostSlugTaken
	}

	return resolved, nil
}
