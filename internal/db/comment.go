package db

import (
	"strings"

	"gorm.io/gorm"
)

// Comment 定义了文章评论模型。
// 新评论默认 Approved=false，仅在管理员审核通过后对外可见。
type Comment struct {
	gorm.Model
	PostID   uint   `gorm:"index;not null"`
	Post     Post
	Author   string `gorm:"size:120"`
	Body     string `gorm:"type:text;not null"`
	Approved bool   `gorm:"default:false;index"`
}

// DisplayAuthor 返回用于展示的作者名，空值回退为 Anonymous。
func (c *Comment) DisplayAuthor() string {
	author := strings.TrimSpace(c.Author)
	if author == "" {
		return "Anonymous"
	}
	return author
}
