package models

// User is an account that can submit reviews. Only identity and role matter
// to the API; reviews reference users by ID and display them by username.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username" validate:"required,min=3,max=50"`
	Email    string `gorm:"unique;not null" json:"email" validate:"required,email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:user" json:"role" validate:"required,oneof=user admin"`
}

// IsAdmin reports whether the user may mutate platforms and movies.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// RegisterInput - for user registration
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// LoginInput - for login validation
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
