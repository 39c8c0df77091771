package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

// BuildingHandler 楼栋模块 HTTP 处理器
type BuildingHandler struct {
	buildingSvc service.BuildingService
}

// NewBuildingHandler 创建 BuildingHandler
func NewBuildingHandler(buildingSvc service.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingSvc: buildingSvc}
}

// ListBuildings 楼栋列表
// GET /api/v1/buildings
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.buildingSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": buildings})
}

// GetBuilding 楼栋详情
// GET /api/v1/buildings/:name
func (h *BuildingHandler) GetBuilding(c *gin.Context) {
	name := c.Param("name")
	b, err := h.buildingSvc.GetByName(c.Request.Context(), name)
	if err != nil {
		h.handleBuildingError(c, err)
		return
	}

	response.OK(c, b)
}

// CreateBuilding 创建楼栋
// POST /api/v1/buildings
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	b, err := h.buildingSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleBuildingError(c, err)
		return
	}

	response.Created(c, b)
}

// UpdateBuilding 更新楼栋
// PUT /api/v1/buildings/:name
func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	name := c.Param("name")

	var req dto.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	b, err := h.buildingSvc.Update(c.Request.Context(), name, &req)
	if err != nil {
		h.handleBuildingError(c, err)
		return
	}

	response.OK(c, b)
}

// DeleteBuilding 删除楼栋
// DELETE /api/v1/buildings/:name
func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	name := c.Param("name")
	if err := h.buildingSvc.Delete(c.Request.Context(), name); err != nil {
		h.handleBuildingError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleBuildingError 统一处理楼栋模块业务错误
func (h *BuildingHandler) handleBuildingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBuildingNotFound):
		response.NotFound(c, 14001, "楼栋不存在")
	case errors.Is(err, service.ErrBuildingExists):
		response.Conflict(c, 14002, "楼栋已存在")
	default:
		response.InternalError(c)
	}
}
