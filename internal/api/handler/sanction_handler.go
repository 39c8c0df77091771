package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

// SanctionHandler 处罚模块 HTTP 处理器
type SanctionHandler struct {
	sanctionSvc service.SanctionService
}

// NewSanctionHandler 创建 SanctionHandler
func NewSanctionHandler(sanctionSvc service.SanctionService) *SanctionHandler {
	return &SanctionHandler{sanctionSvc: sanctionSvc}
}

// ListSanctions 处罚列表（可按参与者过滤）
// GET /api/v1/sanctions
func (h *SanctionHandler) ListSanctions(c *gin.Context) {
	var req dto.SanctionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.sanctionSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleSanctionError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CreateSanction 创建处罚记录
// POST /api/v1/sanctions
func (h *SanctionHandler) CreateSanction(c *gin.Context) {
	var req dto.CreateSanctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sanction, err := h.sanctionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSanctionError(c, err)
		return
	}

	response.Created(c, sanction)
}

// DeleteSanction 删除处罚记录
// DELETE /api/v1/sanctions/:id
func (h *SanctionHandler) DeleteSanction(c *gin.Context) {
	id := c.Param("id")
	if err := h.sanctionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSanctionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSanctionError 统一处理处罚模块业务错误
func (h *SanctionHandler) handleSanctionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSanctionNotFound):
		response.NotFound(c, 16001, "处罚记录不存在")
	case errors.Is(err, service.ErrParticipantNotFound):
		response.BadRequest(c, 16002, "参与者不存在")
	case errors.Is(err, service.ErrInvalidSanctionSpan):
		response.BadRequest(c, 16003, "处罚结束日期不能早于开始日期")
	default:
		response.InternalError(c)
	}
}
