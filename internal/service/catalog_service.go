package service

import (
	"context"
	"fmt"

	"github.com/vivario/reservation-service/internal/models"
	"github.com/vivario/reservation-service/internal/repository"
	"github.com/vivario/reservation-service/pkg/rabbitmq"
)

// CatalogService serves the experience catalog and lets the admin surface
// push changes, which are also announced so sibling services stay in sync.
type CatalogService interface {
	ListExperiences(ctx context.Context, onlyActive bool) ([]models.Experience, error)
	GetExperience(ctx context.Context, id uint) (*models.Experience, error)
	SaveExperience(ctx context.Context, experience *models.Experience) error
}

type catalogService struct {
	repo      repository.ExperienceRepository
	publisher *rabbitmq.Publisher
}

func NewCatalogService(repo repository.ExperienceRepository, publisher *rabbitmq.Publisher) CatalogService {
	return &catalogService{repo: repo, publisher: publisher}
}

func (s *catalogService) ListExperiences(ctx context.Context, onlyActive bool) ([]models.Experience, error) {
	return s.repo.FindAll(ctx, onlyActive)
}

func (s *catalogService) GetExperience(ctx context.Context, id uint) (*models.Experience, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *catalogService) SaveExperience(ctx context.Context, experience *models.Experience) error {
	if err := s.repo.Upsert(ctx, experience); err != nil {
		return fmt.Errorf("save experience: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("experience.updated", experience)
	}

	return nil
}
