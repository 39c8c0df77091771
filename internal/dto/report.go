package dto

// ── 报表模块 DTO ──

// ReportRequest 报表查询区间（闭区间，缺省为最近 30 天）
type ReportRequest struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
}

// OccupancyReportRow 自习室占用统计行
type OccupancyReportRow struct {
	RoomName     string `json:"room_name"`
	Building     string `json:"building"`
	AccessTier   string `json:"access_tier"`
	ActiveCount  int64  `json:"active_count"`
	TotalCount   int64  `json:"total_count"`
}

// ParticipantUsageRow 参与者使用统计行
type ParticipantUsageRow struct {
	CI               string `json:"ci"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	ReservationCount int64  `json:"reservation_count"`
	TotalMinutes     int64  `json:"total_minutes"`
}

// AttendanceReportRow 出席统计行
type AttendanceReportRow struct {
	RoomName  string `json:"room_name"`
	Building  string `json:"building"`
	Attended  int64  `json:"attended"`
	NoShows   int64  `json:"no_shows"`
	Unmarked  int64  `json:"unmarked"`
}
