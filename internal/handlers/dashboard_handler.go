package handlers

import (
	"net/http"
	"time"

	"github.com/careloop/health-blog/backend/internal/models"
	"github.com/careloop/health-blog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const summaryWordLimit = 15

// DashboardHandler serves the role-specific landing views
type DashboardHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.BlogPostRepository
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(userRepo repositories.UserRepository, postRepo repositories.BlogPostRepository) *DashboardHandler {
	return &DashboardHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterDashboardRoutes registers the authenticated dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/patient_dashboard", h.PatientDashboard)
	g.GET("/doctor_dashboard", h.DoctorDashboard)
}

// PostSummary is the listing shape of a post: truncated summary plus author name.
type PostSummary struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Category  models.Category `json:"category"`
	Summary   string          `json:"summary"`
	Image     string          `json:"image,omitempty"`
	Author    string          `json:"author"`
	IsDraft   bool            `json:"is_draft"`
	CreatedAt time.Time       `json:"created_at"`
}

// CategoryGroup is one category section on the patient dashboard.
type CategoryGroup struct {
	Category models.Category `json:"category"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Posts    []PostSummary   `json:"posts"`
}

func summarize(p models.BlogPost) PostSummary {
	s := PostSummary{
		ID:        p.ID,
		Title:     p.Title,
		Category:  p.Category,
		Summary:   p.TruncatedSummary(summaryWordLimit),
		Image:     p.Image,
		IsDraft:   p.IsDraft,
		CreatedAt: p.CreatedAt,
	}
	if p.Author != nil {
		s.Author = p.Author.FullName()
	}
	return s
}

func summarizeAll(posts []models.BlogPost) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summarize(p))
	}
	return out
}

// PatientDashboard shows published posts grouped by category. Every category
// in the enum gets a group, empty or not.
func (h *DashboardHandler) PatientDashboard(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	published, err := h.postRepository.GetPublishedPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	groups := make([]CategoryGroup, 0, len(models.Categories()))
	for _, cat := range models.Categories() {
		group := CategoryGroup{
			Category: cat,
			Name:     cat.DisplayName(),
			Slug:     cat.Slug(),
			Posts:    []PostSummary{},
		}
		for _, p := range published {
			if p.Category == cat {
				group.Posts = append(group.Posts, summarize(p))
			}
		}
		groups = append(groups, group)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":              user,
		"posts_by_category": groups,
		"error":             c.QueryParam("error"),
		"message":           c.QueryParam("message"),
	})
}

// DoctorDashboard shows the caller's own posts, drafts included. A non-doctor
// caller gets an empty list; dashboards are role-routed so this is defensive.
func (h *DashboardHandler) DoctorDashboard(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	posts := []PostSummary{}
	if user.Role == models.RoleDoctor {
		own, err := h.postRepository.GetPostsByAuthor(user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		posts = summarizeAll(own)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":    user,
		"posts":   posts,
		"error":   c.QueryParam("error"),
		"message": c.QueryParam("message"),
	})
}
