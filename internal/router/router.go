package router

import (
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/handler"
	"github.com/devfolio/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由。
// templateGlob 为空时使用默认模板目录；目录不存在时跳过模板加载，便于测试。
func SetupRouter(sessionSecret, uploadDir, uploadURLPath, templateGlob string) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	// 站点跑在纯 HTTP 上，默认的 Secure+SameSite=None 会让浏览器直接丢弃会话 cookie
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("devfolio_session", store))

	r.SetFuncMap(template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"year": func() int {
			return time.Now().Year()
		},
		"socialIcon": view.SocialIcon,
	})

	if templateGlob == "" {
		templateGlob = "web/template/*.html"
	}
	if matches, err := filepath.Glob(templateGlob); err == nil && len(matches) > 0 {
		r.LoadHTMLGlob(templateGlob)
	}

	r.Static("/static", "./web/static")
	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	api := handler.NewAPI(db.DB, uploadDir, uploadURLPath)

	// 公开路由
	r.GET("/", api.Home)
	r.GET("/posts/:slug", api.ShowPost)
	r.POST("/posts/:slug/comments", api.SubmitComment)
	r.POST("/posts/:slug/like", api.ToggleLike)

	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/signup", api.ShowSignupPage)
	r.POST("/signup", api.Signup)
	r.GET("/logout", api.Logout)

	// 需要认证的后台路由
	user := r.Group("/user")
	user.Use(handler.AuthRequired())
	{
		user.GET("", api.ShowDashboard)
		user.GET("/posts", api.ShowPostList)
		user.GET("/posts/new", api.ShowPostEdit)
		user.GET("/posts/edit/:id", api.ShowPostEdit)
		user.GET("/comments", api.ShowModerationQueue)
		user.GET("/projects", api.ShowProjectList)
		user.GET("/projects/new", api.ShowProjectEdit)
		user.GET("/projects/edit/:id", api.ShowProjectEdit)
		user.GET("/profile", api.ShowProfileEdit)

		// JSON API
		userAPI := user.Group("/api")
		{
			userAPI.GET("/posts", api.GetPosts)
			userAPI.GET("/posts/:id", api.GetPost)
			userAPI.POST("/posts", api.CreatePost)
			userAPI.PUT("/posts/:id", api.UpdatePost)
			userAPI.DELETE("/posts/:id", api.DeletePost)

			userAPI.GET("/comments/pending", api.GetPendingComments)
			userAPI.PUT("/comments/:id/approve", api.ApproveComment)
			userAPI.DELETE("/comments/:id", api.DeleteComment)

			userAPI.GET("/projects", api.GetProjects)
			userAPI.GET("/projects/:id", api.GetProject)
			userAPI.POST("/projects", api.CreateProject)
			userAPI.PUT("/projects/:id", api.UpdateProject)
			userAPI.DELETE("/projects/:id", api.DeleteProject)

			userAPI.GET("/profile", api.GetProfile)
			userAPI.PUT("/profile", api.UpdateProfile)

			userAPI.POST("/uploads", api.UploadImage)
		}
	}

	return r
}
