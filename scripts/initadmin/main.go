package main

import (
	"fmt"
	"log"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
)

func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	// 检查是否已存在用户
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，无需初始化")
		return
	}

	email, password := adminCredentials(cfg)
	if err := db.EnsureUser(email, password); err != nil {
		log.Fatal("创建用户失败:", err)
	}

	fmt.Println("默认管理员用户创建成功")
	fmt.Println("邮箱:", email)
	fmt.Println("密码:", password)
}

// 未配置 ADMIN_EMAIL / ADMIN_PASSWORD 时使用本地开发默认值
func adminCredentials(cfg config.AppConfig) (string, string) {
	email := cfg.AdminEmail
	if email == "" {
		email = "admin@example.com"
	}
	password := cfg.AdminPassword
	if password == "" {
		password = "admin123"
	}
	return email, password
}
