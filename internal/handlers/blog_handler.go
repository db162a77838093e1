package handlers

import (
	"net/http"
	"strconv"

	"github.com/careloop/health-blog/backend/internal/models"
	"github.com/careloop/health-blog/backend/internal/policy"
	"github.com/careloop/health-blog/backend/internal/repositories"
	"github.com/careloop/health-blog/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// BlogHandler handles authoring and reading blog posts
type BlogHandler struct {
	postRepository repositories.BlogPostRepository
	userRepository repositories.UserRepository
	imageStore     storage.ImageStore
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(postRepo repositories.BlogPostRepository, userRepo repositories.UserRepository, imageStore storage.ImageStore) *BlogHandler {
	return &BlogHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		imageStore:     imageStore,
	}
}

// RegisterBlogRoutes registers the authenticated blog routes
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group) {
	g.POST("/create-blog-post", h.CreateBlogPost)
	g.POST("/edit-blog-post/:id", h.EditBlogPost)
	g.GET("/blog-post/:id", h.ViewBlogPost)
	g.GET("/blog/category/:slug", h.BlogCategory)
}

func draftState(isDraft bool) string {
	if isDraft {
		return "draft"
	}
	return "published"
}

// CreateBlogPost lets a doctor author a new post. Non-doctors are routed back
// to the doctor dashboard with an error message, not a hard failure.
func (h *BlogHandler) CreateBlogPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if user.Role != models.RoleDoctor {
		return flashRedirect(c, "/doctor_dashboard", "Only doctors can create blog posts.")
	}

	var req models.BlogPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.BlogPost{
		Title:    req.Title,
		Category: models.Category(req.Category),
		Summary:  req.Summary,
		Content:  req.Content,
		IsDraft:  true,
	}
	if req.IsDraft != nil {
		post.IsDraft = *req.IsDraft
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := h.imageStore.Save(fh, "blog_images")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
		}
		post.Image = path
	}

	if err := h.postRepository.CreatePost(user, post); err != nil {
		if err == repositories.ErrForbidden {
			return flashRedirect(c, "/doctor_dashboard", "Only doctors can create blog posts.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return successRedirect(c, "/doctor_dashboard",
		"Blog post '"+post.Title+"' has been saved as "+draftState(post.IsDraft)+".")
}

// EditBlogPost updates one of the caller's own posts. The lookup is scoped to
// the caller, so a missing id and someone else's post are both a plain 404.
func (h *BlogHandler) EditBlogPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Blog post not found")
	}

	post, err := h.postRepository.GetPostByIDAndAuthor(uint(id), user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Blog post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.BlogPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post.Title = req.Title
	post.Category = models.Category(req.Category)
	post.Summary = req.Summary
	post.Content = req.Content
	if req.IsDraft != nil {
		post.IsDraft = *req.IsDraft
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := h.imageStore.Save(fh, "blog_images")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
		}
		post.Image = path
	}

	if err := h.postRepository.UpdatePost(user, post); err != nil {
		if err == repositories.ErrForbidden {
			return echo.NewHTTPError(http.StatusNotFound, "Blog post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return successRedirect(c, "/doctor_dashboard",
		"Blog post '"+post.Title+"' has been updated as "+draftState(post.IsDraft)+".")
}

// ViewBlogPost shows one post, gated by the visibility policy. A denied viewer
// is routed to their own dashboard with a message, never a raw 403.
func (h *BlogHandler) ViewBlogPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Blog post not found")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Blog post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !policy.CanView(user, post) {
		return flashRedirect(c, user.Role.DashboardPath(), "This blog post is not available.")
	}

	return c.JSON(http.StatusOK, post)
}

// BlogCategory lists published posts in one category, resolved from a
// case-insensitive URL slug.
func (h *BlogHandler) BlogCategory(c echo.Context) error {
	if _, err := currentUser(c, h.userRepository); err != nil {
		return err
	}

	category, ok := models.CategoryFromSlug(c.Param("slug"))
	if !ok {
		return flashRedirect(c, "/patient_dashboard", "Category not found.")
	}

	posts, err := h.postRepository.GetPublishedPostsByCategory(category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"category": category,
		"name":     category.DisplayName(),
		"posts":    summarizeAll(posts),
	})
}
