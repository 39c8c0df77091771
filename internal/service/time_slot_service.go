package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/model"
	"github.com/beluume/obligatorio-bases/internal/repository"
)

// ── 时间段模块业务错误 ──

var (
	ErrTimeSlotNotFound = errors.New("时间段不存在")
	ErrInvalidTimeRange = errors.New("结束时间必须晚于开始时间")
)

// TimeSlotService 时间段业务接口
type TimeSlotService interface {
	Create(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TimeSlotResponse, error)
	List(ctx context.Context) ([]dto.TimeSlotResponse, error)
	Delete(ctx context.Context, id string) error
}

type timeSlotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeSlotService 创建 TimeSlotService 实例
func NewTimeSlotService(repo *repository.Repository, logger *zap.Logger) TimeSlotService {
	return &timeSlotService{repo: repo, logger: logger}
}

func (s *timeSlotService) Create(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	slot := &model.TimeSlot{
		TimeSlotID: uuid.NewString(),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	// 创建前校验起止顺序，数据库 CHECK 约束兜底
	if _, err := slot.DurationMinutes(); err != nil {
		return nil, ErrInvalidTimeRange
	}

	if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
		s.logger.Error("创建时间段失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(slot), nil
}

func (s *timeSlotService) GetByID(ctx context.Context, id string) (*dto.TimeSlotResponse, error) {
	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("查询时间段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(slot), nil
}

func (s *timeSlotService) List(ctx context.Context) ([]dto.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("列出时间段失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.TimeSlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, *s.toResponse(&slots[i]))
	}
	return out, nil
}

func (s *timeSlotService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.TimeSlot.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeSlotNotFound
		}
		return err
	}
	if err := s.repo.TimeSlot.Delete(ctx, id); err != nil {
		s.logger.Error("删除时间段失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *timeSlotService) toResponse(slot *model.TimeSlot) *dto.TimeSlotResponse {
	minutes, _ := slot.DurationMinutes()
	return &dto.TimeSlotResponse{
		ID:              slot.TimeSlotID,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		DurationMinutes: minutes,
		CreatedAt:       slot.CreatedAt.Format(time.RFC3339),
	}
}
