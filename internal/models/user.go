package models

import "time"

// User is an account identified by its email address.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(225);not null"`
	Name        string    `json:"name" gorm:"type:varchar(225)"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	IsActive    bool      `json:"-" gorm:"not null;default:true"`
	IsStaff     bool      `json:"-" gorm:"not null;default:false"`
	IsSuperuser bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Profile is the public representation of an account.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile returns the serializable view of u.
func (u *User) Profile() Profile {
	return Profile{Email: u.Email, Name: u.Name}
}
