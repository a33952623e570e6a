package models

import (
	"time"
)

// Review is a rating plus text submitted by one user for one movie. The
// composite unique index backs the one-review-per-user-per-movie rule so a
// concurrent double submit cannot slip past the transactional check.
type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_reviews_user_movie" json:"-"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	MovieID     uint      `gorm:"not null;uniqueIndex:idx_reviews_user_movie" json:"-"`
	Movie       Movie     `gorm:"foreignKey:MovieID" json:"-"`
	Rating      int       `gorm:"not null" json:"rating"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReviewInput - for review create/update
type ReviewInput struct {
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
	Description string `json:"description" validate:"max=255"`
	IsActive    *bool  `json:"is_active"`
}

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	Username string
	IsActive *bool
}
