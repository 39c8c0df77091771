package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	pkgerrors "github.com/beluume/obligatorio-bases/pkg/errors"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

// RoomHandler 自习室模块 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// ListRooms 自习室列表
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var req dto.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rooms, err := h.roomSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// GetRoom 自习室详情（复合主键：名称 + 楼栋）
// GET /api/v1/rooms/:building/:name
func (h *RoomHandler) GetRoom(c *gin.Context) {
	building, name := c.Param("building"), c.Param("name")
	room, err := h.roomSvc.Get(c.Request.Context(), name, building)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// CreateRoom 创建自习室
// POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, room)
}

// UpdateRoom 更新自习室
// PUT /api/v1/rooms/:building/:name
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	building, name := c.Param("building"), c.Param("name")

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), name, building, &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// DeleteRoom 删除自习室
// DELETE /api/v1/rooms/:building/:name
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	building, name := c.Param("building"), c.Param("name")
	if err := h.roomSvc.Delete(c.Request.Context(), name, building); err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRoomError 统一处理自习室模块业务错误
func (h *RoomHandler) handleRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 12001, "自习室不存在")
	case errors.Is(err, service.ErrRoomExists):
		response.Conflict(c, 12002, "自习室已存在")
	case errors.Is(err, service.ErrBuildingNotFound):
		response.BadRequest(c, 12003, "楼栋不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 12004, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
