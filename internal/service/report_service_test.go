package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/beluume/obligatorio-bases/internal/dto"
)

func TestReportService_Occupancy(t *testing.T) {
	f := setupAdmission(false)
	mockReport := &mockReportRepo{
		occupancy: []dto.OccupancyReportRow{
			{RoomName: "S-101", Building: "Central", AccessTier: "open", ActiveCount: 2, TotalCount: 5},
		},
	}
	f.repo.Report = mockReport
	svc := NewReportService(f.repo, nil, zap.NewNop())

	rows, err := svc.Occupancy(context.Background(), &dto.ReportRequest{
		DateFrom: "2026-09-01", DateTo: "2026-09-30",
	})
	if err != nil {
		t.Fatalf("Occupancy 应成功: %v", err)
	}
	if len(rows) != 1 || rows[0].TotalCount != 5 {
		t.Errorf("报表内容错误: %+v", rows)
	}
}

func TestReportService_InvalidDate(t *testing.T) {
	f := setupAdmission(false)
	svc := NewReportService(f.repo, nil, zap.NewNop())

	if _, err := svc.Occupancy(context.Background(), &dto.ReportRequest{DateFrom: "07/09/2026"}); err == nil {
		t.Fatal("非法日期应报错")
	}
}

// cache 为 nil 时每次调用都回源
func TestReportService_NoCacheFallsThrough(t *testing.T) {
	f := setupAdmission(false)
	mockReport := &mockReportRepo{
		usage: []dto.ParticipantUsageRow{{CI: "51234567", ReservationCount: 3, TotalMinutes: 180}},
	}
	f.repo.Report = mockReport
	svc := NewReportService(f.repo, nil, zap.NewNop())

	req := &dto.ReportRequest{DateFrom: "2026-09-01", DateTo: "2026-09-30"}
	for i := 0; i < 2; i++ {
		if _, err := svc.ParticipantUsage(context.Background(), req); err != nil {
			t.Fatalf("ParticipantUsage 应成功: %v", err)
		}
	}
	if mockReport.calls != 2 {
		t.Errorf("无缓存时应回源 2 次，实际 %d", mockReport.calls)
	}
}

func TestReportService_Attendance(t *testing.T) {
	f := setupAdmission(false)
	mockReport := &mockReportRepo{
		attendance: []dto.AttendanceReportRow{
			{RoomName: "S-101", Building: "Central", Attended: 4, NoShows: 1, Unmarked: 2},
		},
	}
	f.repo.Report = mockReport
	svc := NewReportService(f.repo, nil, zap.NewNop())

	rows, err := svc.Attendance(context.Background(), &dto.ReportRequest{
		DateFrom: "2026-09-01", DateTo: "2026-09-30",
	})
	if err != nil {
		t.Fatalf("Attendance 应成功: %v", err)
	}
	if len(rows) != 1 || rows[0].NoShows != 1 {
		t.Errorf("报表内容错误: %+v", rows)
	}
}
