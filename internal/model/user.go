package model

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered identity stored in the database
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:'user'"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Street    string    `json:"street,omitempty" gorm:"type:varchar(255)"`
	City      string    `json:"city,omitempty" gorm:"type:varchar(100)"`
	State     string    `json:"state,omitempty" gorm:"type:varchar(100)"`
	ZipCode   string    `json:"zip_code,omitempty" gorm:"type:varchar(20)"`
	Country   string    `json:"country,omitempty" gorm:"type:varchar(100)"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the password-stripped owner projection embedded in catalog
// views. Nothing sensitive may ever be added here.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the safe projection of the user
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
