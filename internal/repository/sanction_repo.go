package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/model"
)

// SanctionRepository 处分数据访问接口
type SanctionRepository interface {
	Create(ctx context.Context, sanction *model.Sanction) error
	List(ctx context.Context, ci string, offset, limit int) ([]model.Sanction, int64, error)
	// ListActiveByCIAndDate 列出在指定日期生效的处分
	ListActiveByCIAndDate(ctx context.Context, ci string, date time.Time) ([]model.Sanction, error)
	Delete(ctx context.Context, id string) error
}

type sanctionRepo struct {
	db *gorm.DB
}

func NewSanctionRepo(db *gorm.DB) SanctionRepository {
	return &sanctionRepo{db: db}
}

func (r *sanctionRepo) Create(ctx context.Context, sanction *model.Sanction) error {
	return r.db.WithContext(ctx).Create(sanction).Error
}

func (r *sanctionRepo) List(ctx context.Context, ci string, offset, limit int) ([]model.Sanction, int64, error) {
	var sanctions []model.Sanction
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Sanction{})
	if ci != "" {
		db = db.Where("ci = ?", ci)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("start_date DESC").Offset(offset).Limit(limit).Find(&sanctions).Error
	return sanctions, total, err
}

func (r *sanctionRepo) ListActiveByCIAndDate(ctx context.Context, ci string, date time.Time) ([]model.Sanction, error) {
	var sanctions []model.Sanction
	err := r.db.WithContext(ctx).
		Where("ci = ? AND start_date <= ? AND end_date >= ?", ci, date, date).
		Find(&sanctions).Error
	return sanctions, err
}

func (r *sanctionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("sanction_id = ?", id).Delete(&model.Sanction{}).Error
}
