package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/model"
)

// ParticipantRepository 参与者数据访问接口
type ParticipantRepository interface {
	Create(ctx context.Context, p *model.Participant) error
	GetByCI(ctx context.Context, ci string) (*model.Participant, error)
	GetByEmail(ctx context.Context, email string) (*model.Participant, error)
	List(ctx context.Context, offset, limit int) ([]model.Participant, int64, error)
	Update(ctx context.Context, p *model.Participant) error
	Delete(ctx context.Context, ci string) error
	Enroll(ctx context.Context, link *model.ParticipantProgram) error
}

type participantRepo struct {
	db *gorm.DB
}

func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Create(ctx context.Context, p *model.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *participantRepo) GetByCI(ctx context.Context, ci string) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Preload("Programs").Preload("Programs.Program").
		Where("ci = ?", ci).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepo) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepo) List(ctx context.Context, offset, limit int) ([]model.Participant, int64, error) {
	var participants []model.Participant
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Participant{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Programs").Preload("Programs.Program").
		Order("last_name ASC, first_name ASC").
		Offset(offset).Limit(limit).
		Find(&participants).Error
	return participants, total, err
}

func (r *participantRepo) Update(ctx context.Context, p *model.Participant) error {
	return r.db.WithContext(ctx).
		Model(p).
		Where("ci = ?", p.CI).
		Updates(map[string]interface{}{
			"first_name": p.FirstName,
			"last_name":  p.LastName,
			"email":      p.Email,
		}).Error
}

func (r *participantRepo) Delete(ctx context.Context, ci string) error {
	return r.db.WithContext(ctx).
		Where("ci = ?", ci).
		Delete(&model.Participant{}).Error
}

func (r *participantRepo) Enroll(ctx context.Context, link *model.ParticipantProgram) error {
	return r.db.WithContext(ctx).Create(link).Error
}
