package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/devfolio/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var aboutMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify),
	goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
)

// SiteProfileService 提供首页营销内容（hero/about/skills/contact）的读取与更新能力。
type SiteProfileService struct {
	db *gorm.DB
}

// SiteProfileInput 用于更新站点资料。
type SiteProfileInput struct {
	HeroHeading   string
	HeroTagline   string
	AboutMarkdown string
	Skills        string
	ContactEmail  string
	GithubURL     string
	LinkedinURL   string
	TwitterURL    string
}

// NewSiteProfileService 构造 SiteProfileService。
func NewSiteProfileService(gdb *gorm.DB) *SiteProfileService {
	return &SiteProfileService{db: gdb}
}

// Get 读取站点资料，从未配置时返回带默认文案的空记录。
func (s *SiteProfileService) Get() (*db.SiteProfile, error) {
	var profile db.SiteProfile
	err := s.db.Order("id asc").First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load site profile: %w", err)
	}

	return &db.SiteProfile{
		HeroHeading: "Samwel Motari",
		HeroTagline: "Software developer, writer, builder of things.",
	}, nil
}

// Update 写入站点资料，维持单行记录的不变式。
func (s *SiteProfileService) Update(input SiteProfileInput) (*db.SiteProfile, error) {
	var profile db.SiteProfile
	err := s.db.Order("id asc").First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load site profile: %w", err)
	}

	profile.HeroHeading = strings.TrimSpace(input.HeroHeading)
	profile.HeroTagline = strings.TrimSpace(input.HeroTagline)
	profile.AboutMarkdown = input.AboutMarkdown
	profile.Skills = strings.TrimSpace(input.Skills)
	profile.ContactEmail = strings.TrimSpace(input.ContactEmail)
	profile.GithubURL = strings.TrimSpace(input.GithubURL)
	profile.LinkedinURL = strings.TrimSpace(input.LinkedinURL)
	profile.TwitterURL = strings.TrimSpace(input.TwitterURL)

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("save site profile: %w", err)
	}
	return &profile, nil
}

// AboutHTML 将 about 区块的 Markdown 渲染为清洗后的 HTML。
func (s *SiteProfileService) AboutHTML(profile *db.SiteProfile) (string, error) {
	if profile == nil || strings.TrimSpace(profile.AboutMarkdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := aboutMarkdown.Convert([]byte(profile.AboutMarkdown), &buf); err != nil {
		return "", fmt.Errorf("render about markdown: %w", err)
	}

	return SanitizeHTML(buf.String()), nil
}

// SkillList 将逗号分隔的技能串拆分为展示用切片。
func (s *SiteProfileService) SkillList(profile *db.SiteProfile) []string {
	if profile == nil || profile.Skills == "" {
		return nil
	}

	parts := strings.Split(profile.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		skills = append(skills, trimmed)
	}
	if len(skills) == 0 {
		return nil
	}
	return skills
}
