package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/model"
	"github.com/beluume/obligatorio-bases/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoReservations = errors.New("指定条件下无可导出的预约")
	ErrExportGenerateFail   = errors.New("生成 Excel 文件失败")
)

const montevideoTimezone = "America/Montevideo"

// ExportService 导出业务接口
//
// 设计说明：
//   - 预约清单导出为 Excel (.xlsx)，由 Handler 层设置响应头后写入
//   - 参与者的 active 预约以 iCalendar (RFC 5545) 订阅流输出
type ExportService interface {
	// ExportReservations 按过滤条件导出预约清单
	ExportReservations(ctx context.Context, req *dto.ReservationListRequest) (*bytes.Buffer, string, error)
	// CalendarFeed 生成参与者 active 预约的 iCalendar 内容
	CalendarFeed(ctx context.Context, ci string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportReservations — 预约清单导出为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportReservations(ctx context.Context, req *dto.ReservationListRequest) (*bytes.Buffer, string, error) {
	filter := repository.ReservationFilter{
		RoomName: req.RoomName,
		Building: req.Building,
		Status:   model.ReservationStatus(req.Status),
	}
	if req.DateFrom != "" {
		d, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, "", err
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, "", err
		}
		filter.DateTo = &d
	}

	// 导出不分页，上限一次取足
	reservations, _, err := s.repo.Reservation.List(ctx, filter, 0, 10000)
	if err != nil {
		s.logger.Error("查询待导出预约失败", zap.Error(err))
		return nil, "", err
	}
	if len(reservations) == 0 {
		return nil, "", ErrExportNoReservations
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reservas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "自习室", "楼栋", "日期", "开始", "结束", "状态", "参与者", "出席"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range reservations {
		res := &reservations[i]
		start, end := "", ""
		if res.TimeSlot != nil {
			start, end = res.TimeSlot.StartTime, res.TimeSlot.EndTime
		}

		// 每个参与者一行；无参与者的预约也保留一行
		links := res.Participants
		if len(links) == 0 {
			links = []model.ReservationParticipant{{}}
		}
		for j := range links {
			link := &links[j]
			name := link.CI
			if link.Participant != nil {
				name = fmt.Sprintf("%s %s (%s)", link.Participant.FirstName, link.Participant.LastName, link.CI)
			}
			attendance := ""
			if link.Attendance != nil {
				attendance = *link.Attendance
			}

			values := []interface{}{
				res.ReservationID,
				res.RoomName,
				res.Building,
				res.Date.Format("2006-01-02"),
				start,
				end,
				string(res.Status),
				name,
				attendance,
			}
			for k, v := range values {
				cell, _ := excelize.CoordinatesToCellName(k+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("reservas_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// CalendarFeed — 参与者预约的 iCalendar 订阅流
// ═══════════════════════════════════════════════════════════

func (s *exportService) CalendarFeed(ctx context.Context, ci string) (string, error) {
	if _, err := s.repo.Participant.GetByCI(ctx, ci); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrParticipantNotFound
		}
		return "", err
	}

	reservations, err := s.repo.Reservation.ListByParticipant(ctx, ci)
	if err != nil {
		s.logger.Error("查询参与者预约失败", zap.String("ci", ci), zap.Error(err))
		return "", err
	}

	loc, err := time.LoadLocation(montevideoTimezone)
	if err != nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//obligatorio-bases//reservas//ES")

	for i := range reservations {
		res := &reservations[i]
		if res.Status != model.StatusActive || res.TimeSlot == nil {
			continue
		}
		start, err := clockOnDate(res.Date, res.TimeSlot.StartTime, loc)
		if err != nil {
			continue
		}
		end, err := clockOnDate(res.Date, res.TimeSlot.EndTime, loc)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("reservation-%d@obligatorio-bases", res.ReservationID))
		event.SetCreatedTime(res.CreatedAt)
		event.SetDtStampTime(time.Now())
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("Sala %s", res.RoomName))
		event.SetLocation(fmt.Sprintf("%s, %s", res.RoomName, res.Building))
	}

	return cal.Serialize(), nil
}

// clockOnDate 将 "HH:MM" 时刻落到指定日期与时区上
func clockOnDate(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
