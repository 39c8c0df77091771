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

// ── 参与者模块业务错误 ──

var (
	ErrParticipantExists = errors.New("参与者已存在或邮箱已被占用")
	ErrProgramNotFound   = errors.New("学术项目不存在")
)

// ParticipantService 参与者业务接口
type ParticipantService interface {
	Create(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, error)
	GetByCI(ctx context.Context, ci string) (*dto.ParticipantResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ParticipantResponse, int64, error)
	Update(ctx context.Context, ci string, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, error)
	Delete(ctx context.Context, ci string) error
	Enroll(ctx context.Context, ci string, req *dto.EnrollProgramRequest) error
}

type participantService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewParticipantService 创建 ParticipantService 实例
func NewParticipantService(repo *repository.Repository, logger *zap.Logger) ParticipantService {
	return &participantService{repo: repo, logger: logger}
}

func (s *participantService) Create(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, error) {
	p := &model.Participant{
		CI:        req.CI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := s.repo.Participant.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrParticipantExists
		}
		s.logger.Error("创建参与者失败", zap.Error(err))
		return nil, err
	}
	return toParticipantResponse(p), nil
}

func (s *participantService) GetByCI(ctx context.Context, ci string) (*dto.ParticipantResponse, error) {
	p, err := s.repo.Participant.GetByCI(ctx, ci)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		s.logger.Error("查询参与者失败", zap.String("ci", ci), zap.Error(err))
		return nil, err
	}
	return toParticipantResponse(p), nil
}

func (s *participantService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ParticipantResponse, int64, error) {
	participants, total, err := s.repo.Participant.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出参与者失败", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		out = append(out, *toParticipantResponse(&participants[i]))
	}
	return out, total, nil
}

func (s *participantService) Update(ctx context.Context, ci string, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, error) {
	p, err := s.repo.Participant.GetByCI(ctx, ci)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	// 变更邮箱即变更类别：类别从不落库，下一次分类自然生效
	if req.Email != nil {
		p.Email = *req.Email
	}

	if err := s.repo.Participant.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrParticipantExists
		}
		s.logger.Error("更新参与者失败", zap.String("ci", ci), zap.Error(err))
		return nil, err
	}
	return toParticipantResponse(p), nil
}

func (s *participantService) Delete(ctx context.Context, ci string) error {
	if _, err := s.repo.Participant.GetByCI(ctx, ci); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	if err := s.repo.Participant.Delete(ctx, ci); err != nil {
		s.logger.Error("删除参与者失败", zap.String("ci", ci), zap.Error(err))
		return err
	}
	return nil
}

func (s *participantService) Enroll(ctx context.Context, ci string, req *dto.EnrollProgramRequest) error {
	if _, err := s.repo.Participant.GetByCI(ctx, ci); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	if _, err := s.repo.Program.GetByName(ctx, req.ProgramName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotFound
		}
		return err
	}

	role := req.Role
	if role == "" {
		role = string(model.RoleStudent)
	}
	link := &model.ParticipantProgram{
		CI:          ci,
		ProgramName: req.ProgramName,
		Role:        role,
	}
	if err := s.repo.Participant.Enroll(ctx, link); err != nil {
		s.logger.Error("注册学术项目失败", zap.String("ci", ci), zap.Error(err))
		return err
	}
	return nil
}

func toParticipantResponse(p *model.Participant) *dto.ParticipantResponse {
	category, role := ClassifyEmail(p.Email)
	out := &dto.ParticipantResponse{
		CI:        p.CI,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Category:  string(category),
		Role:      string(role),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	for i := range p.Programs {
		link := &p.Programs[i]
		brief := dto.ProgramBrief{Name: link.ProgramName, Role: link.Role}
		if link.Program != nil {
			brief.Type = link.Program.Type
		}
		out.Programs = append(out.Programs, brief)
	}
	return out
}
