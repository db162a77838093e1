package repositories

import (
	"errors"

	"github.com/careloop/health-blog/backend/internal/models"
	"gorm.io/gorm"
)

// ErrForbidden indicates a role or ownership violation on a write.
var ErrForbidden = errors.New("repositories: forbidden")

// BlogPostRepository defines the interface for blog post data operations
type BlogPostRepository interface {
	CreatePost(author *models.User, post *models.BlogPost) error
	GetPostByID(id uint) (*models.BlogPost, error)
	GetPostByIDAndAuthor(id, authorID uint) (*models.BlogPost, error)
	GetPostsByAuthor(authorID uint) ([]models.BlogPost, error)
	GetPublishedPosts() ([]models.BlogPost, error)
	GetPublishedPostsByCategory(category models.Category) ([]models.BlogPost, error)
	UpdatePost(editor *models.User, post *models.BlogPost) error
}

// PostgresBlogPostRepository implements BlogPostRepository for PostgreSQL
type PostgresBlogPostRepository struct {
	db *gorm.DB
}

// NewPostgresBlogPostRepository creates a new PostgresBlogPostRepository
func NewPostgresBlogPostRepository(db *gorm.DB) *PostgresBlogPostRepository {
	return &PostgresBlogPostRepository{db: db}
}

// CreatePost creates a new post owned by author. Only doctors may author
// posts; the role is checked here once, at creation time.
func (r *PostgresBlogPostRepository) CreatePost(author *models.User, post *models.BlogPost) error {
	if author.Role != models.RoleDoctor {
		return ErrForbidden
	}
	post.AuthorID = author.ID
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its author preloaded
func (r *PostgresBlogPostRepository) GetPostByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByIDAndAuthor retrieves a post only if authorID owns it. A wrong id
// and a post owned by someone else are both gorm.ErrRecordNotFound, so the
// edit path never leaks that another doctor's post exists.
func (r *PostgresBlogPostRepository) GetPostByIDAndAuthor(id, authorID uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.Where("id = ? AND author_id = ?", id, authorID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthor retrieves all posts (draft and published) owned by authorID,
// newest first
func (r *PostgresBlogPostRepository) GetPostsByAuthor(authorID uint) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.Preload("Author").Where("author_id = ?", authorID).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublishedPosts retrieves all published posts, newest first
func (r *PostgresBlogPostRepository) GetPublishedPosts() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.Preload("Author").Where("is_draft = ?", false).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublishedPostsByCategory retrieves published posts in one category, newest first
func (r *PostgresBlogPostRepository) GetPublishedPostsByCategory(category models.Category) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.Preload("Author").Where("is_draft = ? AND category = ?", false, category).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost saves field changes to an existing post and refreshes its
// updated_at. Only the original author may edit.
func (r *PostgresBlogPostRepository) UpdatePost(editor *models.User, post *models.BlogPost) error {
	if editor.ID != post.AuthorID {
		return ErrForbidden
	}
	return r.db.Save(post).Error
}
