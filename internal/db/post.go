package db

import (
	"strings"

	"gorm.io/gorm"
)

// Post 定义了文章模型。
// Slug 唯一且仅包含小写字母、数字和连字符；Content 存储富文本编辑器产出的 HTML。
// Tags 为逗号分隔的原始字符串，不做标签表归一化。
type Post struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Slug    string `gorm:"size:200;uniqueIndex;not null"`
	Content string `gorm:"type:text"`
	Tags    string `gorm:"size:500"`
	Likes   int    `gorm:"default:0"`
	UserID  uint
	User    User
}

// TagList 将逗号分隔的标签串拆分为去除空白后的切片。
func (p *Post) TagList() []string {
	if p.Tags == "" {
		return nil
	}

	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		tags = append(tags, trimmed)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
