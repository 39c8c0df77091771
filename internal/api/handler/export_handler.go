package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportReservations 导出预约清单为 Excel
// GET /api/v1/export/reservations
func (h *ExportHandler) ExportReservations(c *gin.Context) {
	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportReservations(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoReservations):
			response.NotFound(c, 17001, err.Error())
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// CalendarFeed 参与者预约的 iCalendar 订阅
// GET /api/v1/participants/:ci/calendar.ics
func (h *ExportHandler) CalendarFeed(c *gin.Context) {
	ci := c.Param("ci")
	if ci == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	feed, err := h.exportSvc.CalendarFeed(c.Request.Context(), ci)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.NotFound(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "inline; filename=\"reservas.ics\"")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
