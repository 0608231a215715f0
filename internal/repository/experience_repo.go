package repository

import (
	"context"

	"github.com/vivario/reservation-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExperienceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Experience, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Experience, error)
	FindAll(ctx context.Context, onlyActive bool) ([]models.Experience, error)
	Upsert(ctx context.Context, experience *models.Experience) error
}

type experienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

func (r *experienceRepository) FindByID(ctx context.Context, id uint) (*models.Experience, error) {
	var experience models.Experience
	if err := r.db.WithContext(ctx).First(&experience, id).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *experienceRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Experience, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var experiences []models.Experience
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&experiences).Error; err != nil {
		return nil, err
	}
	return experiences, nil
}

func (r *experienceRepository) FindAll(ctx context.Context, onlyActive bool) ([]models.Experience, error) {
	var experiences []models.Experience
	q := r.db.WithContext(ctx)
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	if err := q.Order("id ASC").Find(&experiences).Error; err != nil {
		return nil, err
	}
	return experiences, nil
}

// Upsert inserts or refreshes a catalog row synced from the admin service.
func (r *experienceRepository) Upsert(ctx context.Context, experience *models.Experience) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "price", "start_date", "end_date", "image_url", "active", "updated_at"}),
	}).Create(experience).Error
}
