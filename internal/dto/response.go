package dto

// ── 通用简要信息 ──

// BuildingBrief 楼栋简要信息
type BuildingBrief struct {
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

// RoomBrief 自习室简要信息
type RoomBrief struct {
	Name       string `json:"name"`
	Building   string `json:"building"`
	AccessTier string `json:"access_tier"`
}

// TimeSlotBrief 时间段简要信息
type TimeSlotBrief struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ParticipantBrief 参与者简要信息
type ParticipantBrief struct {
	CI        string `json:"ci"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go
