package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/dto"
)

// ReportRepository 报表聚合查询接口，底层为原生 SQL
type ReportRepository interface {
	OccupancyByRoom(ctx context.Context, from, to time.Time) ([]dto.OccupancyReportRow, error)
	ParticipantUsage(ctx context.Context, from, to time.Time, limit int) ([]dto.ParticipantUsageRow, error)
	AttendanceByRoom(ctx context.Context, from, to time.Time) ([]dto.AttendanceReportRow, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) OccupancyByRoom(ctx context.Context, from, to time.Time) ([]dto.OccupancyReportRow, error) {
	var rows []dto.OccupancyReportRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT rm.name AS room_name,
		       rm.building,
		       rm.access_tier,
		       COUNT(*) FILTER (WHERE rs.status = 'active')   AS active_count,
		       COUNT(rs.reservation_id)                       AS total_count
		FROM rooms rm
		LEFT JOIN reservations rs
		       ON rs.room_name = rm.name AND rs.building = rm.building
		      AND rs.date BETWEEN ? AND ?
		GROUP BY rm.name, rm.building, rm.access_tier
		ORDER BY total_count DESC, rm.building, rm.name
	`, from, to).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ParticipantUsage(ctx context.Context, from, to time.Time, limit int) ([]dto.ParticipantUsageRow, error) {
	var rows []dto.ParticipantUsageRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.ci,
		       p.first_name,
		       p.last_name,
		       COUNT(rs.reservation_id) AS reservation_count,
		       COALESCE(SUM(
		           (EXTRACT(HOUR FROM ts.end_time::time) * 60 + EXTRACT(MINUTE FROM ts.end_time::time))
		         - (EXTRACT(HOUR FROM ts.start_time::time) * 60 + EXTRACT(MINUTE FROM ts.start_time::time))
		       ), 0)::bigint AS total_minutes
		FROM participants p
		JOIN reservation_participants rp ON rp.ci = p.ci
		JOIN reservations rs ON rs.reservation_id = rp.reservation_id
		JOIN time_slots ts ON ts.time_slot_id = rs.time_slot_id
		WHERE rs.date BETWEEN ? AND ? AND rs.status <> 'cancelled'
		GROUP BY p.ci, p.first_name, p.last_name
		ORDER BY total_minutes DESC
		LIMIT ?
	`, from, to, limit).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) AttendanceByRoom(ctx context.Context, from, to time.Time) ([]dto.AttendanceReportRow, error) {
	var rows []dto.AttendanceReportRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT rs.room_name,
		       rs.building,
		       COUNT(*) FILTER (WHERE rp.attendance = 'attended') AS attended,
		       COUNT(*) FILTER (WHERE rp.attendance = 'no_show')  AS no_shows,
		       COUNT(*) FILTER (WHERE rp.attendance IS NULL)      AS unmarked
		FROM reservations rs
		JOIN reservation_participants rp ON rp.reservation_id = rs.reservation_id
		WHERE rs.date BETWEEN ? AND ? AND rs.status = 'completed'
		GROUP BY rs.room_name, rs.building
		ORDER BY rs.building, rs.room_name
	`, from, to).Scan(&rows).Error
	return rows, err
}
