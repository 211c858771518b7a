package entity

import "time"

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Никогда не отправляем пароль
	CreatedAt    time.Time `json:"created_at"`
}

// Регистрация
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Логин
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

// JWT Claims
type JWTClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
