package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/devfolio/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionKeyLikedPosts = "liked_posts"

// Home 渲染首页：hero/about/skills 营销区块、项目列表与最新文章。
func (a *API) Home(c *gin.Context) {
	profile, err := a.profile.Get()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Something went wrong",
			"error": "Could not load the page, please retry",
		})
		return
	}

	aboutHTML, err := a.profile.AboutHTML(profile)
	if err != nil {
		aboutHTML = ""
	}

	projects, err := a.projects.List()
	if err != nil {
		projects = nil
	}

	posts, err := a.posts.ListAll()
	if err != nil {
		posts = nil
	}
	if len(posts) > 6 {
		posts = posts[:6]
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"title":    profile.HeroHeading,
		"profile":  profile,
		"about":    template.HTML(aboutHTML),
		"skills":   a.profile.SkillList(profile),
		"projects": projects,
		"posts":    posts,
	})
}

// ShowPost 按 slug 渲染公开文章页，包含已审核评论与点赞状态。
func (a *API) ShowPost(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{
				"title": "Post not found",
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Something went wrong",
			"error": "Could not load the post, please retry",
		})
		return
	}

	comments, err := a.comments.ListApproved(post.ID)
	if err != nil {
		comments = nil
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"title":    post.Title,
		"post":     post,
		"content":  template.HTML(service.SanitizeHTML(post.Content)),
		"tags":     post.TagList(),
		"comments": comments,
		"liked":    likedPosts(c)[post.ID],
		"email":    currentEmail(c),
	})
}

// SubmitComment 处理公开的评论提交，评论始终以待审核状态入库。
func (a *API) SubmitComment(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{
			"title": "Post not found",
		})
		return
	}

	author := strings.TrimSpace(c.PostForm("author"))
	if author == "" {
		author = currentEmail(c)
	}

	_, err = a.comments.Submit(service.CommentInput{
		PostID: post.ID,
		Author: author,
		Body:   c.PostForm("body"),
	})
	if err != nil {
		comments, listErr := a.comments.ListApproved(post.ID)
		if listErr != nil {
			comments = nil
		}
		message := "Could not submit your comment, please retry"
		if errors.Is(err, service.ErrCommentBodyRequired) {
			message = "Comment text is required"
		}
		c.HTML(http.StatusBadRequest, "post.html", gin.H{
			"title":        post.Title,
			"post":         post,
			"content":      template.HTML(service.SanitizeHTML(post.Content)),
			"tags":         post.TagList(),
			"comments":     comments,
			"liked":        likedPosts(c)[post.ID],
			"email":        currentEmail(c),
			"commentError": message,
			"commentBody":  c.PostForm("body"),
		})
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+post.Slug+"?submitted=1")
}

// ToggleLike 点赞开关。
// 以最近一次读取的计数为基准做 ±1 的绝对值写入，不做并发控制：
// 两个并发点赞者会彼此覆盖，后写者胜出。会话内记录“我是否点过赞”，
// 仅在写入成功后翻转，刷新或换端后该标记即丢失。
func (a *API) ToggleLike(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	liked := likedPosts(c)
	newCount := post.Likes + 1
	if liked[post.ID] {
		newCount = post.Likes - 1
	}

	updated, err := a.posts.SetLikes(post.ID, newCount)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not update likes")
		return
	}

	liked[post.ID] = !liked[post.ID]
	if !liked[post.ID] {
		delete(liked, post.ID)
	}
	storeLikedPosts(c, liked)

	c.JSON(http.StatusOK, gin.H{"likes": updated.Likes, "liked": liked[post.ID]})
}

// likedPosts 从会话读取当前访客点过赞的文章集合。
// 集合以逗号分隔的 id 串存储，避免给 cookie 会话引入 gob 注册。
func likedPosts(c *gin.Context) map[uint]bool {
	session := sessions.Default(c)
	raw, _ := session.Get(sessionKeyLikedPosts).(string)

	liked := make(map[uint]bool)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil {
			continue
		}
		liked[uint(id)] = true
	}
	return liked
}

func storeLikedPosts(c *gin.Context, liked map[uint]bool) {
	ids := make([]string, 0, len(liked))
	for id, ok := range liked {
		if !ok {
			continue
		}
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
	}

	session := sessions.Default(c)
	session.Set(sessionKeyLikedPosts, strings.Join(ids, ","))
	_ = session.Save()
}
