package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/model"
	"github.com/beluume/obligatorio-bases/internal/repository"
	pkgerrors "github.com/beluume/obligatorio-bases/pkg/errors"
	"github.com/beluume/obligatorio-bases/pkg/redis"
)

// ── 自习室模块业务错误 ──

var (
	ErrRoomExists       = errors.New("自习室已存在")
	ErrBuildingNotFound = errors.New("楼栋不存在")
)

const roomCacheTTL = 10 * time.Minute

// RoomService 自习室业务接口
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	Get(ctx context.Context, name, building string) (*dto.RoomResponse, error)
	List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, error)
	Update(ctx context.Context, name, building string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	Delete(ctx context.Context, name, building string) error
}

type roomService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewRoomService 创建 RoomService 实例；cache 为 nil 时跳过缓存
func NewRoomService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, cache: cache, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if _, err := s.repo.Building.GetByName(ctx, req.Building); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}

	room := &model.Room{
		Name:       req.Name,
		Building:   req.Building,
		Capacity:   req.Capacity,
		AccessTier: model.AccessTier(req.AccessTier),
		Floor:      req.Floor,
		Equipment:  req.Equipment,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomExists
		}
		s.logger.Error("创建自习室失败", zap.Error(err))
		return nil, err
	}

	s.invalidateListCache(ctx)
	return toRoomResponse(room), nil
}

func (s *roomService) Get(ctx context.Context, name, building string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.Get(ctx, name, building)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询自习室失败", zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, error) {
	cacheKey := fmt.Sprintf("rooms:%s:%s", req.Building, req.AccessTier)
	if s.cache != nil {
		var cached []dto.RoomResponse
		hit, err := s.cache.CacheGet(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("自习室缓存读取失败", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	rooms, err := s.repo.Room.List(ctx, req.Building, model.AccessTier(req.AccessTier))
	if err != nil {
		s.logger.Error("列出自习室失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, *toRoomResponse(&rooms[i]))
	}

	if s.cache != nil {
		if err := s.cache.CacheSet(ctx, cacheKey, out, roomCacheTTL); err != nil {
			s.logger.Warn("自习室缓存写入失败", zap.Error(err))
		}
	}
	return out, nil
}

func (s *roomService) Update(ctx context.Context, name, building string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.Get(ctx, name, building)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.AccessTier != nil {
		room.AccessTier = model.AccessTier(*req.AccessTier)
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Equipment != nil {
		room.Equipment = *req.Equipment
	}

	if err := s.repo.Room.Update(ctx, room); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, err
		}
		s.logger.Error("更新自习室失败", zap.Error(err))
		return nil, err
	}

	s.invalidateListCache(ctx)
	updated, err := s.repo.Room.Get(ctx, name, building)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(updated), nil
}

func (s *roomService) Delete(ctx context.Context, name, building string) error {
	if _, err := s.repo.Room.Get(ctx, name, building); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if err := s.repo.Room.Delete(ctx, name, building); err != nil {
		s.logger.Error("删除自习室失败", zap.Error(err))
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

// invalidateListCache 写操作后使列表缓存失效。
// 过滤组合有限（楼栋 × 级别），统一清空无过滤键并依赖 TTL 收敛其余组合。
func (s *roomService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheDelete(ctx, "rooms::"); err != nil {
		s.logger.Warn("自习室缓存失效失败", zap.Error(err))
	}
}

func toRoomResponse(room *model.Room) *dto.RoomResponse {
	out := &dto.RoomResponse{
		Name:       room.Name,
		Building:   room.Building,
		Capacity:   room.Capacity,
		AccessTier: string(room.AccessTier),
		Floor:      room.Floor,
		Equipment:  room.Equipment,
		CreatedAt:  room.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  room.UpdatedAt.Format(time.RFC3339),
	}
	if room.BuildingRef != nil {
		out.BuildingIn = &dto.BuildingBrief{
			Name:       room.BuildingRef.Name,
			Department: room.BuildingRef.Department,
		}
	}
	return out
}
