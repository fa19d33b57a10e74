package repository

import (
	"context"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

// CatalogRepository serves the static-ish reference data: room types,
// rooms, time slots and top-up denominations.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	var types []domain.RoomType
	if err := r.db.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *CatalogRepository) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	var rt domain.RoomType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *CatalogRepository) ListTimeSlots(ctx context.Context) ([]domain.TimeSlot, error) {
	var slots []domain.TimeSlot
	if err := r.db.WithContext(ctx).Order("id").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *CatalogRepository) GetTimeSlot(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *CatalogRepository) ListTopupAmounts(ctx context.Context) ([]domain.TopupAmount, error) {
	var amounts []domain.TopupAmount
	if err := r.db.WithContext(ctx).Order("amount").Find(&amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *CatalogRepository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}
