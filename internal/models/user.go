package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role classifies an account. Patients read published posts, doctors author them.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

// ParseRole maps a submitted role value to the closed enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient:
		return RolePatient, true
	case RoleDoctor:
		return RoleDoctor, true
	}
	return "", false
}

// DashboardPath returns the role-specific landing route.
func (r Role) DashboardPath() string {
	switch r {
	case RoleDoctor:
		return "/doctor_dashboard"
	case RolePatient:
		return "/patient_dashboard"
	}
	return "/login"
}

// User is an account in the directory. Accounts are created at signup and
// never deleted through the application.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Password       string    `json:"-"` // bcrypt hash, never serialized
	Role           Role      `json:"role" gorm:"size:10"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	AddressLine1   string    `json:"address_line1" gorm:"size:255"`
	City           string    `json:"city" gorm:"size:100"`
	State          string    `json:"state" gorm:"size:100"`
	Pincode        string    `json:"pincode" gorm:"size:10"`
	IsSuperuser    bool      `json:"-" gorm:"default:false"` // set out of band, read only by the visibility policy
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName joins the profile name fields for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// SignupRequest defines the signup form fields.
type SignupRequest struct {
	Username        string `json:"username" form:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
	Role            string `json:"role" form:"role" validate:"required,oneof=PATIENT DOCTOR"`
	FirstName       string `json:"first_name" form:"first_name" validate:"required,max=150"`
	LastName        string `json:"last_name" form:"last_name" validate:"required,max=150"`
	AddressLine1    string `json:"address_line1" form:"address_line1" validate:"required,max=255"`
	City            string `json:"city" form:"city" validate:"required,max=100"`
	State           string `json:"state" form:"state" validate:"required,max=100"`
	Pincode         string `json:"pincode" form:"pincode" validate:"required,max=10"`
}

// LoginRequest accepts a username or an email as the identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" form:"identifier" validate:"required"`
	Password   string `json:"password" form:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}
