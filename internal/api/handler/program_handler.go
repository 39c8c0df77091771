package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

// ProgramHandler 学院与学术项目模块 HTTP 处理器
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler 创建 ProgramHandler
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// ListFaculties 学院列表
// GET /api/v1/faculties
func (h *ProgramHandler) ListFaculties(c *gin.Context) {
	faculties, err := h.programSvc.ListFaculties(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": faculties})
}

// CreateFaculty 创建学院
// POST /api/v1/faculties
func (h *ProgramHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	f, err := h.programSvc.CreateFaculty(c.Request.Context(), &req)
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.Created(c, f)
}

// DeleteFaculty 删除学院
// DELETE /api/v1/faculties/:id
func (h *ProgramHandler) DeleteFaculty(c *gin.Context) {
	id := c.Param("id")
	if err := h.programSvc.DeleteFaculty(c.Request.Context(), id); err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListPrograms 学术项目列表
// GET /api/v1/programs
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programSvc.ListPrograms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": programs})
}

// CreateProgram 创建学术项目
// POST /api/v1/programs
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req dto.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	p, err := h.programSvc.CreateProgram(c.Request.Context(), &req)
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.Created(c, p)
}

// DeleteProgram 删除学术项目
// DELETE /api/v1/programs/:name
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	name := c.Param("name")
	if err := h.programSvc.DeleteProgram(c.Request.Context(), name); err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleProgramError 统一处理学院/学术项目模块业务错误
func (h *ProgramHandler) handleProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFacultyNotFound):
		response.NotFound(c, 14101, "学院不存在")
	case errors.Is(err, service.ErrFacultyExists):
		response.Conflict(c, 14102, "学院已存在")
	case errors.Is(err, service.ErrProgramNotFound):
		response.NotFound(c, 14103, "学术项目不存在")
	case errors.Is(err, service.ErrProgramExists):
		response.Conflict(c, 14104, "学术项目已存在")
	default:
		response.InternalError(c)
	}
}
