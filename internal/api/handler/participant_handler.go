package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

// ParticipantHandler 参与者模块 HTTP 处理器
type ParticipantHandler struct {
	participantSvc service.ParticipantService
	reservationSvc service.ReservationService
}

// NewParticipantHandler 创建 ParticipantHandler
func NewParticipantHandler(participantSvc service.ParticipantService, reservationSvc service.ReservationService) *ParticipantHandler {
	return &ParticipantHandler{participantSvc: participantSvc, reservationSvc: reservationSvc}
}

// ListParticipants 参与者列表（分页）
// GET /api/v1/participants
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.participantSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetParticipant 参与者详情（类别/角色即时推导）
// GET /api/v1/participants/:ci
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	ci := c.Param("ci")
	p, err := h.participantSvc.GetByCI(c.Request.Context(), ci)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, p)
}

// CreateParticipant 创建参与者
// POST /api/v1/participants
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var req dto.CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	p, err := h.participantSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.Created(c, p)
}

// UpdateParticipant 更新参与者
// PUT /api/v1/participants/:ci
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	ci := c.Param("ci")

	var req dto.UpdateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	p, err := h.participantSvc.Update(c.Request.Context(), ci, &req)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, p)
}

// DeleteParticipant 删除参与者
// DELETE /api/v1/participants/:ci
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	ci := c.Param("ci")
	if err := h.participantSvc.Delete(c.Request.Context(), ci); err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, nil)
}

// EnrollProgram 参与者注册学术项目
// POST /api/v1/participants/:ci/programs
func (h *ParticipantHandler) EnrollProgram(c *gin.Context) {
	ci := c.Param("ci")

	var req dto.EnrollProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.participantSvc.Enroll(c.Request.Context(), ci, &req); err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.Created(c, nil)
}

// ListParticipantReservations 参与者的全部预约
// GET /api/v1/participants/:ci/reservations
func (h *ParticipantHandler) ListParticipantReservations(c *gin.Context) {
	ci := c.Param("ci")
	list, err := h.reservationSvc.ListByParticipant(c.Request.Context(), ci)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleParticipantError 统一处理参与者模块业务错误
func (h *ParticipantHandler) handleParticipantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		response.NotFound(c, 13001, "参与者不存在")
	case errors.Is(err, service.ErrParticipantExists):
		response.Conflict(c, 13002, "参与者已存在或邮箱已被占用")
	case errors.Is(err, service.ErrProgramNotFound):
		response.BadRequest(c, 13003, "学术项目不存在")
	default:
		response.InternalError(c)
	}
}
