package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Role      Role      `gorm:"type:varchar(16);default:'user';not null" json:"role"`
	Superuser bool      `gorm:"default:false;not null" json:"superuser"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries admin authority. The superuser
// flag grants admin regardless of role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Superuser
}

// IsModerator reports whether the user's role is moderator.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// BeforeCreate hook to set UUID before creating a User
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}
