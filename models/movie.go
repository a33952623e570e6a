package models

import "time"

// Movie is a reviewable title belonging to one platform. AvgRating and
// NumberRating are derived fields owned by the review-creation path; client
// writes never touch them.
type Movie struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	PlatformID   uint      `gorm:"not null" json:"platform_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	AvgRating    float64   `gorm:"default:0" json:"avg_rating"`
	NumberRating int       `gorm:"default:0" json:"number_rating"`
	CreatedAt    time.Time `json:"created_at"`
	Reviews      []Review  `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
}

// ApplyRating folds one new rating into the movie's running aggregate. The
// first rating becomes the average outright; every later rating is averaged
// against the previous average only, so older ratings decay in influence.
// That halving behavior is the product contract, not a shortcut for the mean.
func (m *Movie) ApplyRating(rating int) {
	if m.NumberRating == 0 {
		m.AvgRating = float64(rating)
	} else {
		m.AvgRating = (m.AvgRating + float64(rating)) / 2
	}
	m.NumberRating++
}

// MovieInput - for movie create/update
type MovieInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=255"`
	PlatformID  uint   `json:"platform_id" validate:"required,gte=1"`
	IsActive    *bool  `json:"is_active"`
}
