package main

import (
	"fmt"
	"log"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

// 演示数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	email, password := adminCredentials(cfg)
	admin := ensureAdmin(email, password)
	seedProfile()
	seedProjects(admin.ID)
	seedPosts(admin.ID)

	fmt.Println("演示数据生成完成！")
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

// 创建管理员用户
func ensureAdmin(email, password string) *db.User {
	if err := db.EnsureUser(email, password); err != nil {
		log.Fatal("创建用户失败:", err)
	}

	var admin db.User
	if err := db.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		log.Fatal("查询用户失败:", err)
	}
	return &admin
}

// 创建站点资料
func seedProfile() {
	profiles := service.NewSiteProfileService(db.DB)
	if _, err := profiles.Update(service.SiteProfileInput{
		HeroHeading:   "Hi, I'm Samwel Motari",
		HeroTagline:   "Full-stack developer building fast, reliable web applications.",
		AboutMarkdown: "## About me\n\nI build web applications end to end, from database design to responsive front ends.\n\n- Backend APIs and data modelling\n- Frontend interfaces people enjoy using\n- Deployment and operations",
		Skills:        "Go, TypeScript, React, PostgreSQL, Docker",
		ContactEmail:  "hello@motari.dev",
		GithubURL:     "https://github.com/motari",
		LinkedinURL:   "https://linkedin.com/in/motari",
	}); err != nil {
		log.Fatal("写入站点资料失败:", err)
	}
	fmt.Println("站点资料已写入")
}

// 创建演示项目
func seedProjects(userID uint) {
	projects := service.NewProjectService(db.DB)

	var count int64
	db.DB.Model(&db.Project{}).Count(&count)
	if count > 0 {
		fmt.Println("项目已存在，跳过创建")
		return
	}

	inputs := []service.ProjectInput{
		{
			Title:       "Devfolio",
			Description: "This site. A portfolio and blog with comment moderation and per-session likes.",
			Stack:       "Go, Gin, GORM, SQLite",
			GithubURL:   "https://github.com/motari/devfolio",
		},
		{
			Title:       "Shiptrack",
			Description: "Shipment tracking dashboard with live status updates.",
			Stack:       "Go, WebSockets, PostgreSQL",
			GithubURL:   "https://github.com/motari/shiptrack",
			LiveURL:     "https://shiptrack.motari.dev",
		},
		{
			Title:       "Notesync",
			Description: "Offline-first note taking app with conflict-free sync.",
			Stack:       "TypeScript, React, IndexedDB",
			GithubURL:   "https://github.com/motari/notesync",
		},
	}

	for _, input := range inputs {
		if _, err := projects.Create(input, userID); err != nil {
			log.Fatal("创建项目失败:", err)
		}
	}
	fmt.Printf("项目: %d 个\n", len(inputs))
}

// 创建演示文章与评论
func seedPosts(userID uint) {
	posts := service.NewPostService(db.DB)
	comments := service.NewCommentService(db.DB)

	var count int64
	db.DB.Model(&db.Post{}).Count(&count)
	if count > 0 {
		fmt.Println("文章已存在，跳过创建")
		return
	}

	inputs := []service.PostInput{
		{
			Title:   "Why I rebuilt my portfolio in Go",
			Content: "<p>After years of framework churn I wanted something I could run on a $5 VPS and forget about. Here is what changed.</p>",
			Tags:    "go,meta",
			UserID:  userID,
		},
		{
			Title:   "Comment moderation that stays out of the way",
			Content: "<p>Every comment starts hidden. One click approves it, one click removes it, and nothing else is possible.</p>",
			Tags:    "go,design",
			UserID:  userID,
		},
		{
			Title:   "Session-scoped likes without accounts",
			Content: "<p>Likes on this blog do not need a login. The session remembers what you liked, and the count just follows along.</p>",
			Tags:    "go,sessions",
			UserID:  userID,
		},
	}

	for i, input := range inputs {
		post, err := posts.Create(input)
		if err != nil {
			log.Fatal("创建文章失败:", err)
		}

		// 第一篇文章带一条已审核评论和一条待审核评论，方便演示审核队列
		if i == 0 {
			approved, err := comments.Submit(service.CommentInput{
				PostID: post.ID,
				Author: "Ada",
				Body:   "Great write-up, the deployment section was exactly what I needed.",
			})
			if err != nil {
				log.Fatal("创建评论失败:", err)
			}
			if _, err := comments.Approve(approved.ID); err != nil {
				log.Fatal("审核评论失败:", err)
			}

			if _, err := comments.Submit(service.CommentInput{
				PostID: post.ID,
				Body:   "Would love a follow-up on backups.",
			}); err != nil {
				log.Fatal("创建评论失败:", err)
			}
		}
	}
	fmt.Printf("文章: %d 篇\n", len(inputs))
}
