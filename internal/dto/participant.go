package dto

// ── 参与者模块 DTO ──

// CreateParticipantRequest 创建参与者请求
type CreateParticipantRequest struct {
	CI        string `json:"ci"         binding:"required,max=20"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name"  binding:"required,max=100"`
	Email     string `json:"email"      binding:"required,email,max=255"`
}

// UpdateParticipantRequest 更新参与者请求
type UpdateParticipantRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,max=100"`
	Email     *string `json:"email"      binding:"omitempty,email,max=255"`
}

// EnrollProgramRequest 参与者注册学术项目请求
type EnrollProgramRequest struct {
	ProgramName string `json:"program_name" binding:"required,max=150"`
	Role        string `json:"role"         binding:"omitempty,oneof=student faculty"`
}

// ParticipantResponse 参与者响应
// category / role 按邮箱后缀即时推导，绝不落库
type ParticipantResponse struct {
	CI        string         `json:"ci"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Category  string         `json:"category"`
	Role      string         `json:"role"`
	Programs  []ProgramBrief `json:"programs,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// ProgramBrief 学术项目简要信息
type ProgramBrief struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Role string `json:"role,omitempty"`
}
