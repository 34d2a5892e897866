package models

import "time"

type Role string

const (
	RoleBrand   Role = "brand"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

type Brand struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Creator struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email" validate:"required,email"`
	PasswordHash     string    `json:"-"`
	ProfileCompleted bool      `json:"profile_completed"`
	Phone            *string   `json:"phone,omitempty"`
	Nickname         *string   `json:"nickname,omitempty"`
	Bio              *string   `json:"bio,omitempty"`
	JoinDate         time.Time `json:"join_date"`
	CreatedAt        time.Time `json:"created_at"`
}

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=brand creator admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=brand creator admin"`
}

type LoginResponse struct {
	AccessToken      string `json:"access_token"`
	Role             string `json:"role"`
	Username         string `json:"username"`
	UserID           string `json:"user_id"`
	ProfileCompleted *bool  `json:"profile_completed,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=brand creator admin"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateCreatorProfileRequest struct {
	Phone    *string `json:"phone,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

type PasswordResetToken struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	AccountRole Role       `json:"account_role"`
	TokenHash   string     `json:"-"`
	ExpiresAt   time.Time  `json:"expires_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
