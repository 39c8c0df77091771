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

// ── 学院 / 学术项目模块业务错误 ──

var (
	ErrFacultyNotFound = errors.New("学院不存在")
	ErrFacultyExists   = errors.New("学院已存在")
	ErrProgramExists   = errors.New("学术项目已存在")
)

// ProgramService 学院与学术项目业务接口
type ProgramService interface {
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error)
	ListFaculties(ctx context.Context) ([]dto.FacultyResponse, error)
	DeleteFaculty(ctx context.Context, id string) error

	CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error)
	ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error)
	DeleteProgram(ctx context.Context, name string) error
}

type programService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgramService 创建 ProgramService 实例
func NewProgramService(repo *repository.Repository, logger *zap.Logger) ProgramService {
	return &programService{repo: repo, logger: logger}
}

// ────────────────────── 学院 ──────────────────────

func (s *programService) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error) {
	f := &model.Faculty{Name: req.Name}
	if err := s.repo.Faculty.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFacultyExists
		}
		s.logger.Error("创建学院失败", zap.Error(err))
		return nil, err
	}
	return toFacultyResponse(f), nil
}

func (s *programService) ListFaculties(ctx context.Context) ([]dto.FacultyResponse, error) {
	faculties, err := s.repo.Faculty.List(ctx)
	if err != nil {
		s.logger.Error("列出学院失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.FacultyResponse, 0, len(faculties))
	for i := range faculties {
		out = append(out, *toFacultyResponse(&faculties[i]))
	}
	return out, nil
}

func (s *programService) DeleteFaculty(ctx context.Context, id string) error {
	if _, err := s.repo.Faculty.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}
	if err := s.repo.Faculty.Delete(ctx, id); err != nil {
		s.logger.Error("删除学院失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 学术项目 ──────────────────────

func (s *programService) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	if _, err := s.repo.Faculty.GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	p := &model.AcademicProgram{
		Name:      req.Name,
		Type:      req.Type,
		FacultyID: req.FacultyID,
	}
	if err := s.repo.Program.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProgramExists
		}
		s.logger.Error("创建学术项目失败", zap.Error(err))
		return nil, err
	}
	return toProgramResponse(p), nil
}

func (s *programService) ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.repo.Program.List(ctx)
	if err != nil {
		s.logger.Error("列出学术项目失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		out = append(out, *toProgramResponse(&programs[i]))
	}
	return out, nil
}

func (s *programService) DeleteProgram(ctx context.Context, name string) error {
	if _, err := s.repo.Program.GetByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	if err := s.repo.Program.Delete(ctx, name); err != nil {
		s.logger.Error("删除学术项目失败", zap.String("name", name), zap.Error(err))
		return err
	}
	return nil
}

func toFacultyResponse(f *model.Faculty) *dto.FacultyResponse {
	return &dto.FacultyResponse{
		ID:        f.FacultyID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}

func toProgramResponse(p *model.AcademicProgram) *dto.ProgramResponse {
	out := &dto.ProgramResponse{
		Name:      p.Name,
		Type:      p.Type,
		FacultyID: p.FacultyID,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.Faculty != nil {
		out.Faculty = p.Faculty.Name
	}
	return out
}
