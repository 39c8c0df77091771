package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/model"
)

// BuildingRepository 楼栋数据访问接口
type BuildingRepository interface {
	Create(ctx context.Context, b *model.Building) error
	GetByName(ctx context.Context, name string) (*model.Building, error)
	List(ctx context.Context) ([]model.Building, error)
	Update(ctx context.Context, b *model.Building) error
	Delete(ctx context.Context, name string) error
}

type buildingRepo struct {
	db *gorm.DB
}

func NewBuildingRepo(db *gorm.DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *model.Building) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *buildingRepo) GetByName(ctx context.Context, name string) (*model.Building, error) {
	var b model.Building
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *buildingRepo) List(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&buildings).Error
	return buildings, err
}

func (r *buildingRepo) Update(ctx context.Context, b *model.Building) error {
	return r.db.WithContext(ctx).
		Model(b).
		Where("name = ?", b.Name).
		Updates(map[string]interface{}{
			"address":    b.Address,
			"department": b.Department,
		}).Error
}

func (r *buildingRepo) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&model.Building{}).Error
}
