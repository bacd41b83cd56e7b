package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type projectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Stack       string `json:"stack"`
	ImageURL    string `json:"image_url"`
	GithubURL   string `json:"github_url"`
	LiveURL     string `json:"live_url"`
}

// ShowProjectList 渲染项目管理页面
func (a *API) ShowProjectList(c *gin.Context) {
	projects, err := a.projects.List()
	if err != nil {
		projects = nil
	}

	c.HTML(http.StatusOK, "project_list.html", gin.H{
		"title":    "Projects",
		"projects": projects,
	})
}

// ShowProjectEdit 渲染项目新建/编辑页面
func (a *API) ShowProjectEdit(c *gin.Context) {
	data := gin.H{"title": "New project"}

	if idParam := c.Param("id"); idParam != "" {
		id, err := parseUintParam(c, "id")
		if err != nil {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{"title": "Project not found"})
			return
		}

		project, err := a.projects.Get(id)
		if err != nil {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{"title": "Project not found"})
			return
		}

		data["title"] = "Edit project"
		data["project"] = project
	}

	c.HTML(http.StatusOK, "project_edit.html", data)
}

// GetProjects 获取项目列表
func (a *API) GetProjects(c *gin.Context) {
	projects, err := a.projects.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject 获取单个项目
func (a *API) GetProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := a.projects.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not load project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// CreateProject 创建项目，所有者由会话用户派生，客户端不可指定
func (a *API) CreateProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req, "project title is required") {
		return
	}

	project, err := a.projects.Create(service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Stack:       req.Stack,
		ImageURL:    req.ImageURL,
		GithubURL:   req.GithubURL,
		LiveURL:     req.LiveURL,
	}, currentUserID(c))
	if err != nil {
		respondProjectError(c, err, "could not create project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project created", "project": project})
}

// UpdateProject 更新项目
func (a *API) UpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	var req projectRequest
	if !bindJSON(c, &req, "project title is required") {
		return
	}

	project, err := a.projects.Update(id, service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Stack:       req.Stack,
		ImageURL:    req.ImageURL,
		GithubURL:   req.GithubURL,
		LiveURL:     req.LiveURL,
	})
	if err != nil {
		respondProjectError(c, err, "could not update project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project updated", "project": project})
}

// DeleteProject 删除项目
func (a *API) DeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := a.projects.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "could not delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func respondProjectError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		respondError(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, "project not found")
	case errors.Is(err, service.ErrProjectTitleRequired):
		respondError(c, http.StatusBadRequest, "project title is required")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
