package models

import (
	"time"

	"gorm.io/gorm"
)

type Hackathon struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	PricePaise int64          `gorm:"not null;default:0" json:"price_paise"`
	Currency   string         `gorm:"size:3;default:'INR'" json:"currency"`
	CreatedBy  uint           `gorm:"not null;index" json:"created_by"`
	StartsAt   *time.Time     `json:"starts_at,omitempty"`
	EndsAt     *time.Time     `json:"ends_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Hackathon) TableName() string {
	return "hackathons"
}

type Team struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	HackathonID uint           `gorm:"not null;index" json:"hackathon_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	LeaderID    uint           `gorm:"not null;index" json:"leader_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Hackathon Hackathon `gorm:"foreignKey:HackathonID" json:"-"`
	Leader    User      `gorm:"foreignKey:LeaderID" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}
