package handlers_test

import (
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/careloop/health-blog/backend/internal/middleware"
	"github.com/careloop/health-blog/backend/internal/models"
	"github.com/careloop/health-blog/backend/internal/repositories"
	"github.com/careloop/health-blog/backend/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ----- stub repositories -----

type stubUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uint]*models.User{}}
}

func (s *stubUserRepo) CreateUser(u *models.User) error {
	s.nextID++
	u.ID = s.nextID
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubPostRepo struct {
	posts  map[uint]*models.BlogPost
	users  *stubUserRepo
	nextID uint
}

func newStubPostRepo(users *stubUserRepo) *stubPostRepo {
	return &stubPostRepo{posts: map[uint]*models.BlogPost{}, users: users}
}

func (s *stubPostRepo) CreatePost(author *models.User, post *models.BlogPost) error {
	if author.Role != models.RoleDoctor {
		return repositories.ErrForbidden
	}
	s.nextID++
	post.ID = s.nextID
	post.AuthorID = author.ID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID] = post
	return nil
}

func (s *stubPostRepo) GetPostByID(id uint) (*models.BlogPost, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	if author, err := s.users.GetUserByID(p.AuthorID); err == nil {
		cp.Author = author
	}
	return &cp, nil
}

func (s *stubPostRepo) GetPostByIDAndAuthor(id, authorID uint) (*models.BlogPost, error) {
	p, ok := s.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubPostRepo) GetPostsByAuthor(authorID uint) ([]models.BlogPost, error) {
	return s.collect(func(p *models.BlogPost) bool { return p.AuthorID == authorID }), nil
}

func (s *stubPostRepo) GetPublishedPosts() ([]models.BlogPost, error) {
	return s.collect(func(p *models.BlogPost) bool { return !p.IsDraft }), nil
}

func (s *stubPostRepo) GetPublishedPostsByCategory(category models.Category) ([]models.BlogPost, error) {
	return s.collect(func(p *models.BlogPost) bool { return !p.IsDraft && p.Category == category }), nil
}

func (s *stubPostRepo) UpdatePost(editor *models.User, post *models.BlogPost) error {
	if editor.ID != post.AuthorID {
		return repositories.ErrForbidden
	}
	post.UpdatedAt = time.Now()
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

// collect filters and orders newest-first, matching the Postgres queries.
func (s *stubPostRepo) collect(keep func(*models.BlogPost) bool) []models.BlogPost {
	var out []models.BlogPost
	for _, p := range s.posts {
		if keep(p) {
			cp := *p
			if author, err := s.users.GetUserByID(p.AuthorID); err == nil {
				cp.Author = author
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type stubImageStore struct{}

func (stubImageStore) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	return subdir + "/stub.png", nil
}

// ----- request helpers -----

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func newFormContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// signIn puts session claims for u on the context, as the auth middleware would.
func signIn(c echo.Context, u *models.User) {
	c.Set(middleware.ContextClaimsKey, &models.JwtCustomClaims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
}

func seedUser(users *stubUserRepo, username, email string, role models.Role) *models.User {
	u := &models.User{
		Username:  username,
		Email:     email,
		Password:  "$2a$10$invalidhashforseedusersonly",
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
	}
	users.CreateUser(u)
	return u
}

func seedPost(posts *stubPostRepo, author *models.User, title string, category models.Category, draft bool, createdAt time.Time) *models.BlogPost {
	p := &models.BlogPost{
		Title:     title,
		Category:  category,
		Summary:   "summary for " + title,
		Content:   "content for " + title,
		IsDraft:   draft,
		CreatedAt: createdAt,
	}
	if err := posts.CreatePost(author, p); err != nil {
		panic(err)
	}
	return p
}

// redirectTarget splits a Location header into path and query values.
func redirectTarget(rec *httptest.ResponseRecorder) (string, url.Values) {
	u, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	if err != nil {
		return "", nil
	}
	return u.Path, u.Query()
}
