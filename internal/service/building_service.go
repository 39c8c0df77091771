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

// ── 楼栋模块业务错误 ──

var ErrBuildingExists = errors.New("楼栋已存在")

// BuildingService 楼栋业务接口
type BuildingService interface {
	Create(ctx context.Context, req *dto.CreateBuildingRequest) (*dto.BuildingResponse, error)
	GetByName(ctx context.Context, name string) (*dto.BuildingResponse, error)
	List(ctx context.Context) ([]dto.BuildingResponse, error)
	Update(ctx context.Context, name string, req *dto.UpdateBuildingRequest) (*dto.BuildingResponse, error)
	Delete(ctx context.Context, name string) error
}

type buildingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBuildingService 创建 BuildingService 实例
func NewBuildingService(repo *repository.Repository, logger *zap.Logger) BuildingService {
	return &buildingService{repo: repo, logger: logger}
}

func (s *buildingService) Create(ctx context.Context, req *dto.CreateBuildingRequest) (*dto.BuildingResponse, error) {
	b := &model.Building{
		Name:       req.Name,
		Address:    req.Address,
		Department: req.Department,
	}
	if err := s.repo.Building.Create(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBuildingExists
		}
		s.logger.Error("创建楼栋失败", zap.Error(err))
		return nil, err
	}
	return toBuildingResponse(b), nil
}

func (s *buildingService) GetByName(ctx context.Context, name string) (*dto.BuildingResponse, error) {
	b, err := s.repo.Building.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		s.logger.Error("查询楼栋失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return toBuildingResponse(b), nil
}

func (s *buildingService) List(ctx context.Context) ([]dto.BuildingResponse, error) {
	buildings, err := s.repo.Building.List(ctx)
	if err != nil {
		s.logger.Error("列出楼栋失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.BuildingResponse, 0, len(buildings))
	for i := range buildings {
		out = append(out, *toBuildingResponse(&buildings[i]))
	}
	return out, nil
}

func (s *buildingService) Update(ctx context.Context, name string, req *dto.UpdateBuildingRequest) (*dto.BuildingResponse, error) {
	b, err := s.repo.Building.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}

	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Department != nil {
		b.Department = *req.Department
	}

	if err := s.repo.Building.Update(ctx, b); err != nil {
		s.logger.Error("更新楼栋失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return toBuildingResponse(b), nil
}

func (s *buildingService) Delete(ctx context.Context, name string) error {
	if _, err := s.repo.Building.GetByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBuildingNotFound
		}
		return err
	}
	if err := s.repo.Building.Delete(ctx, name); err != nil {
		s.logger.Error("删除楼栋失败", zap.String("name", name), zap.Error(err))
		return err
	}
	return nil
}

func toBuildingResponse(b *model.Building) *dto.BuildingResponse {
	return &dto.BuildingResponse{
		Name:       b.Name,
		Address:    b.Address,
		Department: b.Department,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}
