package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beluume/obligatorio-bases/config"
	"github.com/beluume/obligatorio-bases/internal/api/handler"
	"github.com/beluume/obligatorio-bases/internal/api/middleware"
	"github.com/beluume/obligatorio-bases/pkg/redis"
)

const (
	maxBodyBytes       = 1 << 20 // 请求体上限 1MB
	admissionRateLimit = 30      // 准入接口每窗口上限
	admissionRateWin   = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 预约模块
		reservations := v1.Group("/reservations")
		{
			// 准入是唯一写放大入口，单独限流
			reservations.POST("/admission",
				middleware.RateLimit(rdb, admissionRateLimit, admissionRateWin),
				h.Reservation.Admit)
			reservations.GET("", h.Reservation.ListReservations)
			reservations.GET("/:id", h.Reservation.GetReservation)
			reservations.PUT("/:id/status", h.Reservation.UpdateStatus)
			reservations.PUT("/:id/participants/:ci/attendance", h.Reservation.UpdateAttendance)
			reservations.DELETE("/:id", h.Reservation.DeleteReservation)
		}

		// 自习室模块（复合主键：楼栋 + 名称）
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", h.Room.ListRooms)
			rooms.POST("", h.Room.CreateRoom)
			rooms.GET("/:building/:name", h.Room.GetRoom)
			rooms.PUT("/:building/:name", h.Room.UpdateRoom)
			rooms.DELETE("/:building/:name", h.Room.DeleteRoom)
		}

		// 时间段模块
		timeSlots := v1.Group("/time-slots")
		{
			timeSlots.GET("", h.TimeSlot.ListTimeSlots)
			timeSlots.GET("/:id", h.TimeSlot.GetTimeSlot)
			timeSlots.POST("", h.TimeSlot.CreateTimeSlot)
			timeSlots.DELETE("/:id", h.TimeSlot.DeleteTimeSlot)
		}

		// 参与者模块
		participants := v1.Group("/participants")
		{
			participants.GET("", h.Participant.ListParticipants)
			participants.POST("", h.Participant.CreateParticipant)
			participants.GET("/:ci", h.Participant.GetParticipant)
			participants.PUT("/:ci", h.Participant.UpdateParticipant)
			participants.DELETE("/:ci", h.Participant.DeleteParticipant)
			participants.POST("/:ci/programs", h.Participant.EnrollProgram)
			participants.GET("/:ci/reservations", h.Participant.ListParticipantReservations)
			participants.GET("/:ci/calendar.ics", h.Export.CalendarFeed)
		}

		// 楼栋模块
		buildings := v1.Group("/buildings")
		{
			buildings.GET("", h.Building.ListBuildings)
			buildings.POST("", h.Building.CreateBuilding)
			buildings.GET("/:name", h.Building.GetBuilding)
			buildings.PUT("/:name", h.Building.UpdateBuilding)
			buildings.DELETE("/:name", h.Building.DeleteBuilding)
		}

		// 学院与专业模块
		faculties := v1.Group("/faculties")
		{
			faculties.GET("", h.Program.ListFaculties)
			faculties.POST("", h.Program.CreateFaculty)
			faculties.DELETE("/:id", h.Program.DeleteFaculty)
		}
		programs := v1.Group("/programs")
		{
			programs.GET("", h.Program.ListPrograms)
			programs.POST("", h.Program.CreateProgram)
			programs.DELETE("/:name", h.Program.DeleteProgram)
		}

		// 处罚模块
		sanctions := v1.Group("/sanctions")
		{
			sanctions.GET("", h.Sanction.ListSanctions)
			sanctions.POST("", h.Sanction.CreateSanction)
			sanctions.DELETE("/:id", h.Sanction.DeleteSanction)
		}

		// 报表模块
		reports := v1.Group("/reports")
		{
			reports.GET("/occupancy", h.Report.Occupancy)
			reports.GET("/participant-usage", h.Report.ParticipantUsage)
			reports.GET("/attendance", h.Report.Attendance)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/reservations", h.Export.ExportReservations)
		}
	}

	return r
}
