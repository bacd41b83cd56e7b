package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title   string `json:"title" binding:"required"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// ShowPostList 渲染文章管理页面
func (a *API) ShowPostList(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		posts = nil
	}

	c.HTML(http.StatusOK, "post_list.html", gin.H{
		"title": "Posts",
		"posts": posts,
	})
}

// ShowPostEdit 渲染文章新建/编辑页面
func (a *API) ShowPostEdit(c *gin.Context) {
	data := gin.H{"title": "New post"}

	if idParam := c.Param("id"); idParam != "" {
		id, err := parseUintParam(c, "id")
		if err != nil {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{"title": "Post not found"})
			return
		}

		post, err := a.posts.Get(id)
		if err != nil {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{"title": "Post not found"})
			return
		}

		data["title"] = "Edit post"
		data["post"] = post
	}

	c.HTML(http.StatusOK, "post_edit.html", data)
}

// GetPosts 获取文章列表
func (a *API) GetPosts(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost 获取单篇文章
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not load post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost 创建新文章
func (a *API) CreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "post title is required") {
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
		Tags:    req.Tags,
		UserID:  currentUserID(c),
	})
	if err != nil {
		respondPostError(c, err, "could not create post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post created", "post": post})
}

// UpdatePost 更新文章
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postRequest
	if !bindJSON(c, &req, "post title is required") {
		return
	}

	post, err := a.posts.Update(id, service.PostInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		respondPostError(c, err, "could not update post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post updated", "post": post})
}

// DeletePost 删除文章及其评论
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "could not delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// respondPostError 把文章服务的业务错误映射为对应的 HTTP 状态码。
// 重复 slug 返回 409，调用方保留用户已填写的表单数据。
func respondPostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrPostTitleRequired):
		respondError(c, http.StatusBadRequest, "post title is required")
	case errors.Is(err, service.ErrPostSlugRequired):
		respondError(c, http.StatusBadRequest, "slug is required: the title has no usable characters")
	case errors.Is(err, service.ErrPostSlugInvalid):
		respondError(c, http.StatusBadRequest, "slug may only contain lowercase letters, digits and hyphens")
	case errors.Is(err, service.ErrPostSlugTaken):
		respondError(c, http.StatusConflict, "this slug is already in use")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
