package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/model"
	"github.com/beluume/obligatorio-bases/internal/repository"
	pkgerrors "github.com/beluume/obligatorio-bases/pkg/errors"
)

// ── 预约生命周期业务错误 ──

var (
	ErrReservationNotFound    = errors.New("预约不存在")
	ErrInvalidTransition      = errors.New("预约已处于终态，状态不可再变更")
	ErrReservationNotComplete = errors.New("仅已完成的预约可记录出席结果")
	ErrAttendanceLinkNotFound = errors.New("该参与者不在此预约中")
)

// ReservationService 预约生命周期业务接口
// 状态机：active →（cancelled | completed），无自动迁移，终态不可变
type ReservationService interface {
	GetByID(ctx context.Context, id uint) (*dto.ReservationResponse, error)
	List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, int64, error)
	ListByParticipant(ctx context.Context, ci string) ([]dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id uint, req *dto.UpdateReservationStatusRequest) (*dto.ReservationResponse, error)
	UpdateAttendance(ctx context.Context, id uint, ci string, req *dto.UpdateAttendanceRequest) error
	Delete(ctx context.Context, id uint) error
}

type reservationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReservationService 创建 ReservationService 实例
func NewReservationService(repo *repository.Repository, logger *zap.Logger) ReservationService {
	return &reservationService{repo: repo, logger: logger}
}

// ────────────────────── GetByID ──────────────────────

func (s *reservationService) GetByID(ctx context.Context, id uint) (*dto.ReservationResponse, error) {
	res, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("查询预约失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toReservationResponse(res), nil
}

// ────────────────────── List ──────────────────────

func (s *reservationService) List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, int64, error) {
	filter := repository.ReservationFilter{
		RoomName: req.RoomName,
		Building: req.Building,
		Status:   model.ReservationStatus(req.Status),
	}
	if req.DateFrom != "" {
		d, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, 0, err
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, 0, err
		}
		filter.DateTo = &d
	}

	reservations, total, err := s.repo.Reservation.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出预约失败", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, *toReservationResponse(&reservations[i]))
	}
	return out, total, nil
}

// ────────────────────── ListByParticipant ──────────────────────

func (s *reservationService) ListByParticipant(ctx context.Context, ci string) ([]dto.ReservationResponse, error) {
	if _, err := s.repo.Participant.GetByCI(ctx, ci); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	reservations, err := s.repo.Reservation.ListByParticipant(ctx, ci)
	if err != nil {
		s.logger.Error("列出参与者预约失败", zap.String("ci", ci), zap.Error(err))
		return nil, err
	}

	out := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, *toReservationResponse(&reservations[i]))
	}
	return out, nil
}

// ────────────────────── UpdateStatus ──────────────────────

// UpdateStatus 将 active 预约迁移到 cancelled 或 completed。
// 状态守卫（WHERE status='active'）未命中即视为非法迁移。
func (s *reservationService) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateReservationStatusRequest) (*dto.ReservationResponse, error) {
	if _, err := s.repo.Reservation.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	target := model.ReservationStatus(req.Status)
	if err := s.repo.Reservation.UpdateStatus(ctx, id, model.StatusActive, target); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrInvalidTransition
		}
		s.logger.Error("变更预约状态失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("预约状态变更",
		zap.Uint("id", id),
		zap.String("to", req.Status),
	)

	updated, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReservationResponse(updated), nil
}

// ────────────────────── UpdateAttendance ──────────────────────

func (s *reservationService) UpdateAttendance(ctx context.Context, id uint, ci string, req *dto.UpdateAttendanceRequest) error {
	res, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}
	if res.Status != model.StatusCompleted {
		return ErrReservationNotComplete
	}

	rows, err := s.repo.Reservation.UpdateAttendance(ctx, id, ci, req.Attendance)
	if err != nil {
		s.logger.Error("记录出席结果失败", zap.Uint("id", id), zap.String("ci", ci), zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrAttendanceLinkNotFound
	}

	s.logger.Info("出席结果已记录",
		zap.Uint("id", id),
		zap.String("ci", ci),
		zap.String("attendance", req.Attendance),
	)
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *reservationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Reservation.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	if err := s.repo.Reservation.Delete(ctx, id); err != nil {
		s.logger.Error("删除预约失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("预约已删除", zap.Uint("id", id))
	return nil
}

// ────────────────────── 响应转换 ──────────────────────

func toReservationResponse(res *model.Reservation) *dto.ReservationResponse {
	out := &dto.ReservationResponse{
		ID:        res.ReservationID,
		RoomName:  res.RoomName,
		Building:  res.Building,
		Date:      res.Date.Format("2006-01-02"),
		Status:    string(res.Status),
		CreatedAt: res.CreatedAt.Format(time.RFC3339),
		UpdatedAt: res.UpdatedAt.Format(time.RFC3339),
	}
	if res.TimeSlot != nil {
		out.TimeSlot = &dto.TimeSlotBrief{
			ID:        res.TimeSlot.TimeSlotID,
			StartTime: res.TimeSlot.StartTime,
			EndTime:   res.TimeSlot.EndTime,
		}
	}
	for i := range res.Participants {
		link := &res.Participants[i]
		entry := dto.AttendanceResponse{
			CI:          link.CI,
			RequestedAt: link.RequestedAt.Format(time.RFC3339),
			Attendance:  link.Attendance,
		}
		if link.Participant != nil {
			entry.Name = link.Participant.FirstName + " " + link.Participant.LastName
		}
		out.Participants = append(out.Participants, entry)
	}
	return out
}
