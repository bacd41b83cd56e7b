package db

import "gorm.io/gorm"

// Project 定义了作品集项目模型。
// UserID 在创建时由会话派生，客户端不可直接指定。
type Project struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Stack       string `gorm:"size:300"`
	ImageURL    string `gorm:"size:500"`
	GithubURL   string `gorm:"size:500"`
	LiveURL     string `gorm:"size:500"`
	UserID      uint   `gorm:"index;not null"`
	User        User
}
