package dto

// ── 处罚模块 DTO ──

// CreateSanctionRequest 创建处罚请求
type CreateSanctionRequest struct {
	CI        string `json:"ci"         binding:"required,max=20"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"     binding:"omitempty,max=500"`
}

// SanctionListRequest 处罚列表查询参数
type SanctionListRequest struct {
	CI string `form:"ci" binding:"omitempty,max=20"`
	PaginationRequest
}

// SanctionResponse 处罚响应
type SanctionResponse struct {
	ID          string            `json:"id"`
	CI          string            `json:"ci"`
	Participant *ParticipantBrief `json:"participant,omitempty"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Reason      string            `json:"reason,omitempty"`
	CreatedAt   string            `json:"created_at"`
}
