package service

import (
	"errors"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectTitleRequired = errors.New("project title is required")
	ErrNotAuthenticated     = errors.New("authentication required")
)

// ProjectService handles portfolio project CRUD.
type ProjectService struct {
	db *gorm.DB
}

// ProjectInput represents fields accepted when creating or updating a project.
// 所有者不在输入中，创建时由会话用户派生。
type ProjectInput struct {
	Title       string
	Description string
	Stack       string
	ImageURL    string
	GithubURL   string
	LiveURL     string
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// List returns all projects ordered by created time descending.
func (s *ProjectService) List() ([]db.Project, error) {
	var projects []db.Project
	if err := s.db.Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create 新建项目。userID 为零值时在任何数据库调用之前即拒绝。
func (s *ProjectService) Create(input ProjectInput, userID uint) (*db.Project, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrProjectTitleRequired
	}

	project := db.Project{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Stack:       strings.TrimSpace(input.Stack),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		GithubURL:   strings.TrimSpace(input.GithubURL),
		LiveURL:     strings.TrimSpace(input.LiveURL),
		UserID:      userID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies updates to an existing project. 所有者字段保持不变。
func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, error) {
	var existing db.Project
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrProjectTitleRequired
	}

	existing.Title = title
	existing.Description = strings.TrimSpace(input.Description)
	existing.Stack = strings.TrimSpace(input.Stack)
	existing.ImageURL = strings.TrimSpace(input.ImageURL)
	existing.GithubURL = strings.TrimSpace(input.GithubURL)
	existing.LiveURL = strings.TrimSpace(input.LiveURL)

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete removes a project by id. 删除不存在的 id 视为成功。
func (s *ProjectService) Delete(id uint) error {
	return s.db.Delete(&db.Project{}, id).Error
}
