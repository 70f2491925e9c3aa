package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex;size:255"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     *string   `json:"full_name"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	IsVerified   bool      `json:"is_verified" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;size:16"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
