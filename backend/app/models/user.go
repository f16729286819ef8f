package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:191;not null"`
	Role         string    `gorm:"size:32;not null;default:user"`
	PasswordHash string    `gorm:"size:128;not null"`
	Salt         string    `gorm:"size:32;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
}

// ValidRole reports whether role is one the service hands out.
func ValidRole(role string) bool { return role == RoleUser || role == RoleAdmin }
