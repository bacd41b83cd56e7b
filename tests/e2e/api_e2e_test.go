package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/router"
	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler   http.Handler
	public    httpClient
	admin     httpClient
	baseURL   string
	uploadDir string
	adminPass string
	user      db.User
	post      *db.Post
	approved  *db.Comment
	pending   *db.Comment
	project   *db.Project
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_AllInterfaces(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("public endpoints", suite.testPublicEndpoints)
	t.Run("admin pages", suite.testAdminPages)
	suite.login(t) // 确保后续 API 测试有有效会话
	t.Run("admin apis", suite.testAdminAPIs)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.User{},
		&db.Post{},
		&db.Comment{},
		&db.Project{},
		&db.SiteProfile{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	db.DB = gdb

	hashed, err := bcrypt.GenerateFromPassword([]byte("e2e-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := db.User{Email: "admin@example.test", Password: string(hashed)}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	postSvc := service.NewPostService(db.DB)
	post, err := postSvc.Create(service.PostInput{
		Title:   "Shipping a Go side project",
		Content: "<p>Notes from taking a weekend project to production.</p>",
		Tags:    "go,deploy",
		UserID:  user.ID,
	})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	commentSvc := service.NewCommentService(db.DB)
	approved, err := commentSvc.Submit(service.CommentInput{
		PostID: post.ID,
		Author: "Ada",
		Body:   "This saved me a weekend, thank you.",
	})
	if err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}
	if _, err := commentSvc.Approve(approved.ID); err != nil {
		t.Fatalf("failed to approve seeded comment: %v", err)
	}
	pending, err := commentSvc.Submit(service.CommentInput{
		PostID: post.ID,
		Body:   "Still waiting in the moderation queue.",
	})
	if err != nil {
		t.Fatalf("failed to seed pending comment: %v", err)
	}

	projectSvc := service.NewProjectService(db.DB)
	project, err := projectSvc.Create(service.ProjectInput{
		Title:       "Shiptrack",
		Description: "Shipment tracking dashboard.",
		Stack:       "Go, PostgreSQL",
		GithubURL:   "https://example.test/shiptrack",
	}, user.ID)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	profileSvc := service.NewSiteProfileService(db.DB)
	if _, err := profileSvc.Update(service.SiteProfileInput{
		HeroHeading:   "Hi, I'm Samwel Motari",
		HeroTagline:   "Full-stack developer.",
		AboutMarkdown: "## About\nE2E about content.",
		Skills:        "Go, React",
		ContactEmail:  "hello@example.test",
	}); err != nil {
		t.Fatalf("failed to seed site profile: %v", err)
	}

	uploadDir := t.TempDir()
	engine := router.SetupRouter("test-session-secret", uploadDir, "/uploads", "../../web/template/*.html")

	return &e2eSuite{
		handler:   engine,
		public:    newLocalClient(engine, true),
		admin:     newLocalClient(engine, true),
		baseURL:   "http://example.test",
		uploadDir: uploadDir,
		adminPass: "e2e-secret",
		user:      user,
		post:      post,
		approved:  approved,
		pending:   pending,
		project:   project,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	form := url.Values{
		"email":    {s.user.Email},
		"password": {s.adminPass},
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to create login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound && resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed, status %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testPublicEndpoints(t *testing.T) {
	t.Helper()

	checkHTML := func(name, path, expect string, code int) {
		t.Helper()
		resp := s.mustRequest(t, s.public, http.MethodGet, path, nil, nil)
		defer resp.Body.Close()
		if resp.StatusCode != code {
			t.Fatalf("%s: expected status %d, got %d", name, code, resp.StatusCode)
		}
		body := readBody(t, resp)
		if expect != "" && !strings.Contains(body, expect) {
			t.Fatalf("%s: response does not contain %q", name, expect)
		}
	}

	checkHTML("home", "/", "Shipping a Go side project", http.StatusOK)
	checkHTML("home hero", "/", "Samwel Motari", http.StatusOK)
	checkHTML("post detail", "/posts/"+s.post.Slug, "Shipping a Go side project", http.StatusOK)
	checkHTML("login page", "/login", "Password", http.StatusOK)
	checkHTML("unknown post", "/posts/no-such-slug", "", http.StatusNotFound)

	// 已审核评论可见，待审核评论不可见
	resp := s.mustRequest(t, s.public, http.MethodGet, "/posts/"+s.post.Slug, nil, nil)
	defer resp.Body.Close()
	body := readBody(t, resp)
	if !strings.Contains(body, s.approved.Body) {
		t.Fatalf("post page missing approved comment")
	}
	if strings.Contains(body, s.pending.Body) {
		t.Fatalf("post page leaks pending comment")
	}

	// 访客提交评论后重定向回文章页
	form := url.Values{"author": {"Grace"}, "body": {"Looking forward to part two."}}
	req, _ := http.NewRequest(http.MethodPost, s.baseURL+"/posts/"+s.post.Slug+"/comments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp2, err := s.public.Do(req)
	if err != nil {
		t.Fatalf("submit comment failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusFound {
		t.Fatalf("submit comment expected 302, got %d", resp2.StatusCode)
	}
	if loc := resp2.Header.Get("Location"); !strings.Contains(loc, "submitted=1") {
		t.Fatalf("unexpected comment redirect %q", loc)
	}

	// 点赞走会话翻转：第一次 +1，第二次同会话 -1
	likeResp := s.mustRequest(t, s.public, http.MethodPost, "/posts/"+s.post.Slug+"/like", nil, nil)
	defer likeResp.Body.Close()
	if likeResp.StatusCode != http.StatusOK {
		t.Fatalf("like expected 200, got %d", likeResp.StatusCode)
	}
	var liked struct {
		Likes int  `json:"likes"`
		Liked bool `json:"liked"`
	}
	decodeJSON(t, likeResp, &liked)
	if liked.Likes != 1 || !liked.Liked {
		t.Fatalf("unexpected like response: %+v", liked)
	}

	unlikeResp := s.mustRequest(t, s.public, http.MethodPost, "/posts/"+s.post.Slug+"/like", nil, nil)
	defer unlikeResp.Body.Close()
	decodeJSON(t, unlikeResp, &liked)
	if liked.Likes != 0 || liked.Liked {
		t.Fatalf("unexpected unlike response: %+v", liked)
	}
}

func (s *e2eSuite) testAdminPages(t *testing.T) {
	t.Helper()
	needs200 := []string{
		"/user",
		"/user/posts",
		"/user/posts/new",
		"/user/posts/edit/" + idStr(s.post.ID),
		"/user/comments",
		"/user/projects",
		"/user/projects/new",
		"/user/projects/edit/" + idStr(s.project.ID),
		"/user/profile",
	}

	for _, path := range needs200 {
		resp := s.mustRequest(t, s.admin, http.MethodGet, path, nil, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, resp.StatusCode)
		}
	}

	resp := s.mustRequest(t, s.admin, http.MethodGet, "/logout", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout expected 302, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testAdminAPIs(t *testing.T) {
	t.Helper()

	resp := s.mustRequest(t, s.admin, http.MethodGet, "/user/api/posts", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list posts expected 200, got %d", resp.StatusCode)
	}

	newPostPayload := map[string]interface{}{
		"title":   "E2E draft notes",
		"content": "<p>Written by the test run.</p>",
		"tags":    "e2e",
	}
	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/user/api/posts", newPostPayload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create post expected 200, got %d, body=%s", resp.StatusCode, readBody(t, resp))
	}
	var created struct {
		Post struct {
			ID   uint   `json:"ID"`
			Slug string `json:"Slug"`
		} `json:"post"`
	}
	decodeJSON(t, resp, &created)
	if created.Post.ID == 0 {
		t.Fatalf("create post returned empty id")
	}
	if created.Post.Slug != "e2e-draft-notes" {
		t.Fatalf("unexpected derived slug %q", created.Post.Slug)
	}

	updatePath := "/user/api/posts/" + idStr(created.Post.ID)
	resp = s.mustRequestJSON(t, s.admin, http.MethodPut, updatePath, map[string]interface{}{
		"title":   "E2E draft notes",
		"slug":    created.Post.Slug,
		"content": "<p>Updated by the test run.</p>",
		"tags":    "e2e,update",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update post expected 200, got %d", resp.StatusCode)
	}

	// 重复 slug 冲突
	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/user/api/posts", map[string]interface{}{
		"title": "Another one",
		"slug":  created.Post.Slug,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate slug expected 409, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, updatePath, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete post expected 200, got %d", resp.StatusCode)
	}

	// 审核队列：通过种子的待审核评论，再删除它
	resp = s.mustRequest(t, s.admin, http.MethodGet, "/user/api/comments/pending", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pending comments expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, s.pending.Body) {
		t.Fatalf("pending queue missing seeded comment: %s", body)
	}

	approvePath := "/user/api/comments/" + idStr(s.pending.ID) + "/approve"
	resp = s.mustRequest(t, s.admin, http.MethodPut, approvePath, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve comment expected 200, got %d", resp.StatusCode)
	}
	// 重复审核仍然成功
	resp = s.mustRequest(t, s.admin, http.MethodPut, approvePath, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-approve comment expected 200, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/user/api/comments/"+idStr(s.pending.ID), nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete comment expected 200, got %d", resp.StatusCode)
	}

	// 项目 CRUD
	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/user/api/projects", map[string]interface{}{
		"title":       "E2E project",
		"description": "Created by the test run.",
		"stack":       "Go",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create project expected 200, got %d", resp.StatusCode)
	}
	var projectCreated struct {
		Project struct {
			ID uint `json:"ID"`
		} `json:"project"`
	}
	decodeJSON(t, resp, &projectCreated)

	projectPath := "/user/api/projects/" + idStr(projectCreated.Project.ID)
	resp = s.mustRequestJSON(t, s.admin, http.MethodPut, projectPath, map[string]interface{}{
		"title":       "E2E project updated",
		"description": "Updated by the test run.",
		"stack":       "Go, SQLite",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update project expected 200, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, projectPath, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete project expected 200, got %d", resp.StatusCode)
	}

	// 站点资料
	resp = s.mustRequest(t, s.admin, http.MethodGet, "/user/api/profile", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get profile expected 200, got %d", resp.StatusCode)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPut, "/user/api/profile", map[string]interface{}{
		"hero_heading":   "Updated heading",
		"hero_tagline":   "Updated tagline",
		"about_markdown": "## Updated about",
		"skills":         "Go",
		"contact_email":  "hello@example.test",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update profile expected 200, got %d", resp.StatusCode)
	}

	resp = s.uploadTestImage(t)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload image expected 200, got %d, body=%s", resp.StatusCode, readBody(t, resp))
	}
	var uploadResp struct {
		URL string `json:"url"`
	}
	decodeJSON(t, resp, &uploadResp)
	if !strings.HasPrefix(uploadResp.URL, "/uploads/") {
		t.Fatalf("unexpected upload url %q", uploadResp.URL)
	}
}

func (s *e2eSuite) uploadTestImage(t *testing.T) *http.Response {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, "image", "test.png"))
	partHeader.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(buf.Bytes()); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	headers := map[string]string{
		"Content-Type": writer.FormDataContentType(),
	}
	return s.mustRequest(t, s.admin, http.MethodPost, "/user/api/uploads", body, headers)
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustRequestJSON(t *testing.T, client httpClient, method, path string, payload map[string]interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	return s.mustRequest(t, client, method, path, bytes.NewReader(data), headers)
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}

func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
