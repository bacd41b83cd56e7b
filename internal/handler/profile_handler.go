package handler

import (
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	HeroHeading   string `json:"hero_heading"`
	HeroTagline   string `json:"hero_tagline"`
	AboutMarkdown string `json:"about_markdown"`
	Skills        string `json:"skills"`
	ContactEmail  string `json:"contact_email"`
	GithubURL     string `json:"github_url"`
	LinkedinURL   string `json:"linkedin_url"`
	TwitterURL    string `json:"twitter_url"`
}

// ShowProfileEdit 渲染站点资料编辑页面
func (a *API) ShowProfileEdit(c *gin.Context) {
	profile, err := a.profile.Get()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Something went wrong",
			"error": "Could not load the site profile",
		})
		return
	}

	c.HTML(http.StatusOK, "profile_edit.html", gin.H{
		"title":   "Site profile",
		"profile": profile,
	})
}

// GetProfile 获取站点资料
func (a *API) GetProfile(c *gin.Context) {
	profile, err := a.profile.Get()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load site profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile 更新站点资料
func (a *API) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}

	profile, err := a.profile.Update(service.SiteProfileInput{
		HeroHeading:   req.HeroHeading,
		HeroTagline:   req.HeroTagline,
		AboutMarkdown: req.AboutMarkdown,
		Skills:        req.Skills,
		ContactEmail:  req.ContactEmail,
		GithubURL:     req.GithubURL,
		LinkedinURL:   req.LinkedinURL,
		TwitterURL:    req.TwitterURL,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not update site profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "profile": profile})
}
