package repository

import (
	"hackpay/internal/models"

	"gorm.io/gorm"
)

type HackathonRepository struct {
	db *gorm.DB
}

func NewHackathonRepository(db *gorm.DB) *HackathonRepository {
	return &HackathonRepository{db: db}
}

func (r *HackathonRepository) GetByID(id uint) (*models.Hackathon, error) {
	var h models.Hackathon
	err := r.db.First(&h, id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(id uint) (*models.Team, error) {
	var t models.Team
	err := r.db.First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
