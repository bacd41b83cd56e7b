package db

import "gorm.io/gorm"

// SiteProfile 存储首页营销区块的可配置内容。
// AboutMarkdown 在渲染前经 Markdown 转换与 HTML 清洗；Skills 为逗号分隔的原始字符串。
// 全站仅维护一行记录。
type SiteProfile struct {
	gorm.Model
	HeroHeading   string `gorm:"size:200"`
	HeroTagline   string `gorm:"size:500"`
	AboutMarkdown string `gorm:"type:text"`
	Skills        string `gorm:"size:1000"`
	ContactEmail  string `gorm:"size:200"`
	GithubURL     string `gorm:"size:500"`
	LinkedinURL   string `gorm:"size:500"`
	TwitterURL    string `gorm:"size:500"`
}

// TableName 返回自定义表名，保持命名一致。
func (SiteProfile) TableName() string {
	return "site_profiles"
}
