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
)

// ── 处罚模块业务错误 ──

var (
	ErrSanctionNotFound    = errors.New("处罚记录不存在")
	ErrInvalidSanctionSpan = errors.New("处罚结束日期不能早于开始日期")
)

// SanctionService 处罚业务接口
// 处罚的登记与预约准入解耦；准入是否读取处罚由功能开关决定
type SanctionService interface {
	Create(ctx context.Context, req *dto.CreateSanctionRequest) (*dto.SanctionResponse, error)
	List(ctx context.Context, req *dto.SanctionListRequest) ([]dto.SanctionResponse, int64, error)
	Delete(ctx context.Context, id string) error
}

type sanctionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSanctionService 创建 SanctionService 实例
func NewSanctionService(repo *repository.Repository, logger *zap.Logger) SanctionService {
	return &sanctionService{repo: repo, logger: logger}
}

func (s *sanctionService) Create(ctx context.Context, req *dto.CreateSanctionRequest) (*dto.SanctionResponse, error) {
	if _, err := s.repo.Participant.GetByCI(ctx, req.CI); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidSanctionSpan
	}

	sanction := &model.Sanction{
		CI:        req.CI,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}
	if err := s.repo.Sanction.Create(ctx, sanction); err != nil {
		s.logger.Error("创建处罚记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("处罚记录已创建",
		zap.String("ci", req.CI),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
	)
	return toSanctionResponse(sanction), nil
}

func (s *sanctionService) List(ctx context.Context, req *dto.SanctionListRequest) ([]dto.SanctionResponse, int64, error) {
	sanctions, total, err := s.repo.Sanction.List(ctx, req.CI, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出处罚记录失败", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.SanctionResponse, 0, len(sanctions))
	for i := range sanctions {
		out = append(out, *toSanctionResponse(&sanctions[i]))
	}
	return out, total, nil
}

func (s *sanctionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Sanction.Delete(ctx, id); err != nil {
		s.logger.Error("删除处罚记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toSanctionResponse(sanction *model.Sanction) *dto.SanctionResponse {
	out := &dto.SanctionResponse{
		ID:        sanction.SanctionID,
		CI:        sanction.CI,
		StartDate: sanction.StartDate.Format("2006-01-02"),
		EndDate:   sanction.EndDate.Format("2006-01-02"),
		Reason:    sanction.Reason,
		CreatedAt: sanction.CreatedAt.Format(time.RFC3339),
	}
	if sanction.Participant != nil {
		out.Participant = &dto.ParticipantBrief{
			CI:        sanction.Participant.CI,
			FirstName: sanction.Participant.FirstName,
			LastName:  sanction.Participant.LastName,
			Email:     sanction.Participant.Email,
		}
	}
	return out
}
