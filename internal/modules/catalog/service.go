package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"coworking/internal/domain"
	"coworking/internal/repository"
)

var ErrRoomTypeNotFound = errors.New("room type not found")

// Service exposes the reference data: room types, time slots and top-up
// denominations. All reads, no invariants.
type Service struct {
	repo *repository.CatalogRepository
}

func NewService(repo *repository.CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	return s.repo.ListRoomTypes(ctx)
}

func (s *Service) RoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	rt, err := s.repo.GetRoomType(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomTypeNotFound
	}
	return rt, err
}

func (s *Service) TimeSlots(ctx context.Context) ([]domain.TimeSlot, error) {
	return s.repo.ListTimeSlots(ctx)
}

func (s *Service) TopupAmounts(ctx context.Context) ([]domain.TopupAmount, error) {
	return s.repo.ListTopupAmounts(ctx)
}
