package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/repository"
	"github.com/beluume/obligatorio-bases/pkg/redis"
)

const (
	reportCacheTTL        = 5 * time.Minute
	defaultReportSpanDays = 30
	usageReportLimit      = 50
)

// ReportService 报表业务接口
// 聚合结果走 Redis 短 TTL 缓存；Redis 不可用时直接回源
type ReportService interface {
	Occupancy(ctx context.Context, req *dto.ReportRequest) ([]dto.OccupancyReportRow, error)
	ParticipantUsage(ctx context.Context, req *dto.ReportRequest) ([]dto.ParticipantUsageRow, error)
	Attendance(ctx context.Context, req *dto.ReportRequest) ([]dto.AttendanceReportRow, error)
}

type reportService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例；cache 为 nil 时跳过缓存
func NewReportService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, cache: cache, logger: logger}
}

func (s *reportService) Occupancy(ctx context.Context, req *dto.ReportRequest) ([]dto.OccupancyReportRow, error) {
	from, to, err := reportWindow(req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:occupancy:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	var rows []dto.OccupancyReportRow
	if s.cacheHit(ctx, key, &rows) {
		return rows, nil
	}

	rows, err = s.repo.Report.OccupancyByRoom(ctx, from, to)
	if err != nil {
		s.logger.Error("占用报表查询失败", zap.Error(err))
		return nil, err
	}
	s.cacheStore(ctx, key, rows)
	return rows, nil
}

func (s *reportService) ParticipantUsage(ctx context.Context, req *dto.ReportRequest) ([]dto.ParticipantUsageRow, error) {
	from, to, err := reportWindow(req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:usage:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	var rows []dto.ParticipantUsageRow
	if s.cacheHit(ctx, key, &rows) {
		return rows, nil
	}

	rows, err = s.repo.Report.ParticipantUsage(ctx, from, to, usageReportLimit)
	if err != nil {
		s.logger.Error("用量报表查询失败", zap.Error(err))
		return nil, err
	}
	s.cacheStore(ctx, key, rows)
	return rows, nil
}

func (s *reportService) Attendance(ctx context.Context, req *dto.ReportRequest) ([]dto.AttendanceReportRow, error) {
	from, to, err := reportWindow(req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:attendance:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	var rows []dto.AttendanceReportRow
	if s.cacheHit(ctx, key, &rows) {
		return rows, nil
	}

	rows, err = s.repo.Report.AttendanceByRoom(ctx, from, to)
	if err != nil {
		s.logger.Error("出席报表查询失败", zap.Error(err))
		return nil, err
	}
	s.cacheStore(ctx, key, rows)
	return rows, nil
}

func (s *reportService) cacheHit(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.CacheGet(ctx, key, dest)
	if err != nil {
		s.logger.Warn("报表缓存读取失败", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *reportService) cacheStore(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheSet(ctx, key, value, reportCacheTTL); err != nil {
		s.logger.Warn("报表缓存写入失败", zap.String("key", key), zap.Error(err))
	}
}

// reportWindow 解析报表区间，缺省为截至今天的最近 30 天
func reportWindow(req *dto.ReportRequest) (time.Time, time.Time, error) {
	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -defaultReportSpanDays)

	var err error
	if req.DateFrom != "" {
		from, err = time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if req.DateTo != "" {
		to, err = time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}
