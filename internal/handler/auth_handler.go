package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devfolio/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	sessionKeyUserID = "user_id"
	sessionKeyEmail  = "email"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Sign in",
	})
}

// Login 处理登录请求，校验通过后把 user_id 与 email 写入会话
func (a *API) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	var user db.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"title": "Sign in",
			"error": "Invalid email or password",
			"email": email,
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"title": "Sign in",
			"error": "Invalid email or password",
			"email": email,
		})
		return
	}

	if err := a.startSession(c, &user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "Sign in",
			"error": "Could not save session, please retry",
			"email": email,
		})
		return
	}

	c.Redirect(http.StatusFound, "/user")
}

// ShowSignupPage 渲染注册页面
func (a *API) ShowSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"title": "Sign up",
	})
}

// Signup 创建账号并自动登录
func (a *API) Signup(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{
			"title": "Sign up",
			"error": "Email and password are required",
			"email": email,
		})
		return
	}

	var existing db.User
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{
			"title": "Sign up",
			"error": "An account with this email already exists",
			"email": email,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{
			"title": "Sign up",
			"error": "Could not create account, please retry",
			"email": email,
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{
			"title": "Sign up",
			"error": "Could not create account, please retry",
			"email": email,
		})
		return
	}

	user := db.User{Email: email, Password: string(hashed)}
	if err := a.db.Create(&user).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{
			"title": "Sign up",
			"error": "Could not create account, please retry",
			"email": email,
		})
		return
	}

	if err := a.startSession(c, &user); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/user")
}

// Logout 清空会话并回到首页
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (a *API) startSession(c *gin.Context, user *db.User) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyEmail, user.Email)
	return session.Save()
}

// AuthRequired 会话认证中间件，未登录的页面请求重定向到登录页，API 请求返回 401。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionKeyUserID) == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/user/api") {
				respondError(c, http.StatusUnauthorized, "authentication required")
			} else {
				c.Redirect(http.StatusFound, "/login")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID 从会话读取登录用户 id，未登录返回零值。
func currentUserID(c *gin.Context) uint {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionKeyUserID).(uint); ok {
		return id
	}
	return 0
}

// currentEmail 从会话读取登录用户邮箱，未登录返回空串。
func currentEmail(c *gin.Context) string {
	session := sessions.Default(c)
	if email, ok := session.Get(sessionKeyEmail).(string); ok {
		return email
	}
	return ""
}
