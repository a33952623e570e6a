package models

// Platform is a streaming service hosting movies.
type Platform struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	About   string  `json:"about"`
	Website string  `json:"website"`
	Movies  []Movie `gorm:"foreignKey:PlatformID;constraint:OnDelete:CASCADE" json:"movies"`
}

// PlatformInput - for platform create/update
type PlatformInput struct {
	Name    string `json:"name" validate:"required,max=30"`
	About   string `json:"about" validate:"required,max=255"`
	Website string `json:"website" validate:"required,url,max=100"`
}
