package handler

import (
	"github.com/devfolio/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	posts     *service.PostService
	comments  *service.CommentService
	projects  *service.ProjectService
	profile   *service.SiteProfileService
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:        gdb,
		posts:     service.NewPostService(gdb),
		comments:  service.NewCommentService(gdb),
		projects:  service.NewProjectService(gdb),
		profile:   service.NewSiteProfileService(gdb),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
