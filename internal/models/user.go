// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Roles assignable to a user. Institutions may define further roles;
// anything outside this list is stored as-is.
const (
	RoleUser      = "User"
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
)

// User represents a platform account, created on first sign-in.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Image     string    `json:"image"`
	Role      string    `gorm:"default:User" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
