package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/model"
	pkgerrors "github.com/beluume/obligatorio-bases/pkg/errors"
)

// RoomRepository 自习室数据访问接口
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	Get(ctx context.Context, name, building string) (*model.Room, error)
	List(ctx context.Context, building string, tier model.AccessTier) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, name, building string) error
}

type roomRepo struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) Get(ctx context.Context, name, building string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("BuildingRef").
		Where("name = ? AND building = ?", name, building).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, building string, tier model.AccessTier) ([]model.Room, error) {
	var rooms []model.Room
	db := r.db.WithContext(ctx).Preload("BuildingRef")
	if building != "" {
		db = db.Where("building = ?", building)
	}
	if tier != "" {
		db = db.Where("access_tier = ?", tier)
	}
	err := db.Order("building ASC, name ASC").Find(&rooms).Error
	return rooms, err
}

// Update 乐观锁更新：version 不匹配说明记录已被其他操作修改
func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	oldVersion := room.Version
	result := r.db.WithContext(ctx).
		Model(room).
		Where("name = ? AND building = ? AND version = ?", room.Name, room.Building, oldVersion).
		Updates(map[string]interface{}{
			"capacity":    room.Capacity,
			"access_tier": room.AccessTier,
			"floor":       room.Floor,
			"equipment":   room.Equipment,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	room.Version = oldVersion + 1
	return nil
}

func (r *roomRepo) Delete(ctx context.Context, name, building string) error {
	return r.db.WithContext(ctx).
		Where("name = ? AND building = ?", name, building).
		Delete(&model.Room{}).Error
}
