package dto

// ── 楼栋 / 学院 / 学术项目 DTO ──

// CreateBuildingRequest 创建楼栋请求
type CreateBuildingRequest struct {
	Name       string `json:"name"       binding:"required,max=100"`
	Address    string `json:"address"    binding:"omitempty,max=255"`
	Department string `json:"department" binding:"omitempty,max=100"`
}

// UpdateBuildingRequest 更新楼栋请求
type UpdateBuildingRequest struct {
	Address    *string `json:"address"    binding:"omitempty,max=255"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// BuildingResponse 楼栋响应
type BuildingResponse struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	Department string `json:"department,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// CreateFacultyRequest 创建学院请求
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

// FacultyResponse 学院响应
type FacultyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// CreateProgramRequest 创建学术项目请求
type CreateProgramRequest struct {
	Name      string `json:"name"       binding:"required,max=150"`
	Type      string `json:"type"       binding:"required,oneof=undergraduate graduate"`
	FacultyID string `json:"faculty_id" binding:"required,uuid"`
}

// ProgramResponse 学术项目响应
type ProgramResponse struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	FacultyID string `json:"faculty_id"`
	Faculty   string `json:"faculty,omitempty"`
	CreatedAt string `json:"created_at"`
}
