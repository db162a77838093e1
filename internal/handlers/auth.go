package handlers

import (
	"net/http"

	"github.com/careloop/health-blog/backend/internal/auth"
	"github.com/careloop/health-blog/backend/internal/models"
	"github.com/careloop/health-blog/backend/internal/repositories"
	"github.com/careloop/health-blog/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	imageStore     storage.ImageStore
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, imageStore storage.ImageStore, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		imageStore:     imageStore,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers the anonymous authentication routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
	e.POST("/logout", h.Logout)
}

// Signup registers a new patient or doctor account and signs it in.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Advisory front-end check, mirrored server-side.
	if req.Password != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "Passwords do not match.")
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid role")
	}

	// Duplicates are checked before insertion, case-sensitive exact match.
	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken.")
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already registered.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     string(hashedPassword),
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
	}

	// Optional profile picture.
	if fh, err := c.FormFile("profile_picture"); err == nil && fh != nil {
		path, err := h.imageStore.Save(fh, "profiles")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store profile picture")
		}
		user.ProfilePicture = path
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Auto-login: issue a session and land on the role dashboard.
	token, err := auth.IssueToken(user, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}
	setSessionCookie(c, token, auth.SessionTTL)

	return c.Redirect(http.StatusFound, user.Role.DashboardPath())
}

// Login authenticates by username or email. Failures are always the same
// generic message so the identifier's existence is never revealed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Username match first, then email.
	user, err := h.userRepository.GetUserByUsername(req.Identifier)
	if err != nil {
		user, err = h.userRepository.GetUserByEmail(req.Identifier)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := auth.IssueToken(user, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}
	setSessionCookie(c, token, auth.SessionTTL)

	return c.Redirect(http.StatusFound, user.Role.DashboardPath())
}

// Logout invalidates the current session and routes back to login.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}
