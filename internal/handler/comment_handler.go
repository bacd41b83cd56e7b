package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowModerationQueue 渲染评论审核队列页面
func (a *API) ShowModerationQueue(c *gin.Context) {
	comments, err := a.comments.ListPending()
	if err != nil {
		comments = nil
	}

	c.HTML(http.StatusOK, "comment_queue.html", gin.H{
		"title":    "Moderate comments",
		"comments": comments,
	})
}

// GetPendingComments 获取待审核评论列表
func (a *API) GetPendingComments(c *gin.Context) {
	comments, err := a.comments.ListPending()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ApproveComment 审核通过一条评论。重复审核是无操作的成功。
func (a *API) ApproveComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := a.comments.Approve(id)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "comment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not approve comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment approved", "comment": comment})
}

// DeleteComment 删除一条评论，任何状态均可
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := a.comments.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "could not delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
