package models

import (
	"strings"
	"time"
)

// Category is the closed set of blog topics.
type Category string

const (
	CategoryMentalHealth Category = "MENTAL_HEALTH"
	CategoryHeartDisease Category = "HEART_DISEASE"
	CategoryCovid19      Category = "COVID19"
	CategoryImmunization Category = "IMMUNIZATION"
)

// Categories lists every category in display order. Dashboards iterate this
// so that empty categories still show up as empty groups.
func Categories() []Category {
	return []Category{
		CategoryMentalHealth,
		CategoryHeartDisease,
		CategoryCovid19,
		CategoryImmunization,
	}
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryMentalHealth:
		return "Mental Health"
	case CategoryHeartDisease:
		return "Heart Disease"
	case CategoryCovid19:
		return "Covid-19"
	case CategoryImmunization:
		return "Immunization"
	}
	return string(c)
}

// Slug returns the URL form of the category.
func (c Category) Slug() string {
	switch c {
	case CategoryMentalHealth:
		return "mental-health"
	case CategoryHeartDisease:
		return "heart-disease"
	case CategoryCovid19:
		return "covid-19"
	case CategoryImmunization:
		return "immunization"
	}
	return strings.ToLower(string(c))
}

var categorySlugs = map[string]Category{
	"mental-health": CategoryMentalHealth,
	"heart-disease": CategoryHeartDisease,
	"covid-19":      CategoryCovid19,
	"immunization":  CategoryImmunization,
}

// CategoryFromSlug maps a URL slug to its category code, case-insensitively.
func CategoryFromSlug(slug string) (Category, bool) {
	c, ok := categorySlugs[strings.ToLower(slug)]
	return c, ok
}

// BlogPost is a health article authored by a doctor. Drafts are invisible to
// everyone but the author (and superusers) until published.
type BlogPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200"`
	Image     string    `json:"image,omitempty"`
	Category  Category  `json:"category" gorm:"size:20;index"`
	Summary   string    `json:"summary" gorm:"size:500"`
	Content   string    `json:"content" gorm:"type:text"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	IsDraft   bool      `json:"is_draft" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TruncatedSummary returns the summary cut to wordLimit words, with an
// ellipsis when anything was cut.
func (p *BlogPost) TruncatedSummary(wordLimit int) string {
	words := strings.Fields(p.Summary)
	if len(words) <= wordLimit {
		return p.Summary
	}
	return strings.Join(words[:wordLimit], " ") + "..."
}

// BlogPostRequest defines the create/edit form fields for a post.
type BlogPostRequest struct {
	Title    string `json:"title" form:"title" validate:"required,max=200"`
	Category string `json:"category" form:"category" validate:"required,oneof=MENTAL_HEALTH HEART_DISEASE COVID19 IMMUNIZATION"`
	Summary  string `json:"summary" form:"summary" validate:"required,max=500"`
	Content  string `json:"content" form:"content" validate:"required"`
	IsDraft  *bool  `json:"is_draft" form:"is_draft"` // nil means keep the default (draft)
}
