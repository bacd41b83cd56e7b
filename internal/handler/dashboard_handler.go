package handler

import (
	"net/http"

	"github.com/devfolio/internal/db"
	"github.com/gin-gonic/gin"
)

// ShowDashboard 渲染后台主面板，汇总文章、项目与待审核评论数量
func (a *API) ShowDashboard(c *gin.Context) {
	var postCount, projectCount, pendingCount int64
	a.db.Model(&db.Post{}).Count(&postCount)
	a.db.Model(&db.Project{}).Count(&projectCount)
	a.db.Model(&db.Comment{}).Where("approved = ?", false).Count(&pendingCount)

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":        "Dashboard",
		"email":        currentEmail(c),
		"postCount":    postCount,
		"projectCount": projectCount,
		"pendingCount": pendingCount,
	})
}
