package dto

// ── 时间段模块 DTO ──

// CreateTimeSlotRequest 创建时间段请求
type CreateTimeSlotRequest struct {
	StartTime string `json:"start_time" binding:"required,len=5"`
	EndTime   string `json:"end_time"   binding:"required,len=5"`
}

// TimeSlotResponse 时间段响应
type TimeSlotResponse struct {
	ID              string `json:"id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	CreatedAt       string `json:"created_at"`
}
