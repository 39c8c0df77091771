package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/service"
	"github.com/beluume/obligatorio-bases/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AdmissionService ──

type mockAdmissionService struct {
	result *dto.AdmissionResponse
	err    error
}

func (m *mockAdmissionService) Admit(_ context.Context, _ *dto.AdmissionRequest) (*dto.AdmissionResponse, error) {
	return m.result, m.err
}

// ── Mock ReservationService ──

type mockReservationService struct {
	getResult     *dto.ReservationResponse
	getErr        error
	listResult    []dto.ReservationResponse
	listTotal     int64
	listErr       error
	byCIResult    []dto.ReservationResponse
	byCIErr       error
	updateResult  *dto.ReservationResponse
	updateErr     error
	attendanceErr error
	deleteErr     error
}

func (m *mockReservationService) GetByID(_ context.Context, _ uint) (*dto.ReservationResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockReservationService) List(_ context.Context, _ *dto.ReservationListRequest) ([]dto.ReservationResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockReservationService) ListByParticipant(_ context.Context, _ string) ([]dto.ReservationResponse, error) {
	return m.byCIResult, m.byCIErr
}
func (m *mockReservationService) UpdateStatus(_ context.Context, _ uint, _ *dto.UpdateReservationStatusRequest) (*dto.ReservationResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockReservationService) UpdateAttendance(_ context.Context, _ uint, _ string, _ *dto.UpdateAttendanceRequest) error {
	return m.attendanceErr
}
func (m *mockReservationService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

// ── Mock RoomService ──

type mockRoomService struct {
	createResult *dto.RoomResponse
	createErr    error
	getResult    *dto.RoomResponse
	getErr       error
	listResult   []dto.RoomResponse
	listErr      error
	updateResult *dto.RoomResponse
	updateErr    error
	deleteErr    error
}

func (m *mockRoomService) Create(_ context.Context, _ *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRoomService) Get(_ context.Context, _, _ string) (*dto.RoomResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockRoomService) List(_ context.Context, _ *dto.RoomListRequest) ([]dto.RoomResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockRoomService) Update(_ context.Context, _, _ string, _ *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockRoomService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf       *bytes.Buffer
	filename  string
	exportErr error
	feed      string
	feedErr   error
}

func (m *mockExportService) ExportReservations(_ context.Context, _ *dto.ReservationListRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.exportErr
}
func (m *mockExportService) CalendarFeed(_ context.Context, _ string) (string, error) {
	return m.feed, m.feedErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func doRequest(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// ReservationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReservationHandler_Admit_Success(t *testing.T) {
	id := uint(42)
	h := NewReservationHandler(&mockAdmissionService{
		result: &dto.AdmissionResponse{Admitted: true, ReservationID: &id},
	}, &mockReservationService{})

	r := gin.New()
	r.POST("/reservations/admission", h.Admit)
	w := doRequest(r, "POST", "/reservations/admission", jsonBody(dto.AdmissionRequest{
		CI:         "51234567",
		RoomName:   "S-101",
		Building:   "Central",
		Date:       "2026-09-07",
		TimeSlotID: "3f6f2a1e-8a4b-4c6d-9e0f-1a2b3c4d5e6f",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	data, _ := json.Marshal(resp.Data)
	var result dto.AdmissionResponse
	json.Unmarshal(data, &result)
	if !result.Admitted {
		t.Error("预期准入通过")
	}
	if result.ReservationID == nil || *result.ReservationID != 42 {
		t.Errorf("预期返回预约 ID 42, got %v", result.ReservationID)
	}
}

func TestReservationHandler_Admit_Denied200(t *testing.T) {
	// 业务拒绝不是错误：仍是 200，admitted=false
	h := NewReservationHandler(&mockAdmissionService{
		result: &dto.AdmissionResponse{Admitted: false, Reason: service.ErrSlotOccupied.Error()},
	}, &mockReservationService{})

	r := gin.New()
	r.POST("/reservations/admission", h.Admit)
	w := doRequest(r, "POST", "/reservations/admission", jsonBody(dto.AdmissionRequest{
		CI:         "51234567",
		RoomName:   "S-101",
		Building:   "Central",
		Date:       "2026-09-07",
		TimeSlotID: "3f6f2a1e-8a4b-4c6d-9e0f-1a2b3c4d5e6f",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	data, _ := json.Marshal(parseResponse(w).Data)
	var result dto.AdmissionResponse
	json.Unmarshal(data, &result)
	if result.Admitted {
		t.Error("预期准入被拒绝")
	}
	if result.Reason == "" {
		t.Error("拒绝结果应携带原因")
	}
}

func TestReservationHandler_Admit_BadJSON(t *testing.T) {
	h := NewReservationHandler(&mockAdmissionService{}, &mockReservationService{})

	r := gin.New()
	r.POST("/reservations/admission", h.Admit)
	w := doRequest(r, "POST", "/reservations/admission", bytes.NewReader([]byte("not json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestReservationHandler_Admit_RoomNotFound(t *testing.T) {
	h := NewReservationHandler(&mockAdmissionService{err: service.ErrRoomNotFound}, &mockReservationService{})

	r := gin.New()
	r.POST("/reservations/admission", h.Admit)
	w := doRequest(r, "POST", "/reservations/admission", jsonBody(dto.AdmissionRequest{
		CI:         "51234567",
		RoomName:   "no-such",
		Building:   "Central",
		Date:       "2026-09-07",
		TimeSlotID: "3f6f2a1e-8a4b-4c6d-9e0f-1a2b3c4d5e6f",
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestReservationHandler_UpdateStatus_Terminal409(t *testing.T) {
	h := NewReservationHandler(&mockAdmissionService{}, &mockReservationService{
		updateErr: service.ErrInvalidTransition,
	})

	r := gin.New()
	r.PUT("/reservations/:id/status", h.UpdateStatus)
	w := doRequest(r, "PUT", "/reservations/7/status", jsonBody(dto.UpdateReservationStatusRequest{
		Status: "cancelled",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11005 {
		t.Errorf("expected error code 11005, got %d", resp.Code)
	}
}

func TestReservationHandler_UpdateStatus_BadID(t *testing.T) {
	h := NewReservationHandler(&mockAdmissionService{}, &mockReservationService{})

	r := gin.New()
	r.PUT("/reservations/:id/status", h.UpdateStatus)
	w := doRequest(r, "PUT", "/reservations/abc/status", jsonBody(dto.UpdateReservationStatusRequest{
		Status: "cancelled",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReservationHandler_UpdateAttendance_NotComplete(t *testing.T) {
	h := NewReservationHandler(&mockAdmissionService{}, &mockReservationService{
		attendanceErr: service.ErrReservationNotComplete,
	})

	r := gin.New()
	r.PUT("/reservations/:id/participants/:ci/attendance", h.UpdateAttendance)
	w := doRequest(r, "PUT", "/reservations/7/participants/51234567/attendance", jsonBody(dto.UpdateAttendanceRequest{
		Attendance: "attended",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11006 {
		t.Errorf("expected error code 11006, got %d", resp.Code)
	}
}

func TestReservationHandler_Get_NotFound(t *testing.T) {
	h := NewReservationHandler(&mockAdmissionService{}, &mockReservationService{
		getErr: service.ErrReservationNotFound,
	})

	r := gin.New()
	r.GET("/reservations/:id", h.GetReservation)
	w := doRequest(r, "GET", "/reservations/999", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestReservationHandler_List_InvalidStatusFilter(t *testing.T) {
	h := NewReservationHandler(&mockAdmissionService{}, &mockReservationService{})

	r := gin.New()
	r.GET("/reservations", h.ListReservations)
	w := doRequest(r, "GET", "/reservations?status=pending", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RoomHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRoomHandler_Get_Success(t *testing.T) {
	h := NewRoomHandler(&mockRoomService{
		getResult: &dto.RoomResponse{Name: "S-101", Building: "Central", AccessTier: "open"},
	})

	r := gin.New()
	r.GET("/rooms/:building/:name", h.GetRoom)
	w := doRequest(r, "GET", "/rooms/Central/S-101", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRoomHandler_Get_NotFound(t *testing.T) {
	h := NewRoomHandler(&mockRoomService{getErr: service.ErrRoomNotFound})

	r := gin.New()
	r.GET("/rooms/:building/:name", h.GetRoom)
	w := doRequest(r, "GET", "/rooms/Central/no-such", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestRoomHandler_Create_Duplicate(t *testing.T) {
	h := NewRoomHandler(&mockRoomService{createErr: service.ErrRoomExists})

	r := gin.New()
	r.POST("/rooms", h.CreateRoom)
	w := doRequest(r, "POST", "/rooms", jsonBody(dto.CreateRoomRequest{
		Name:       "S-101",
		Building:   "Central",
		Capacity:   6,
		AccessTier: "open",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportReservations_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "reservas_20260907.xlsx",
	})

	r := gin.New()
	r.GET("/export/reservations", h.ExportReservations)
	w := doRequest(r, "GET", "/export/reservations", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("缺少 Content-Disposition 头")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("意外的 Content-Type: %s", ct)
	}
}

func TestExportHandler_ExportReservations_Empty(t *testing.T) {
	h := NewExportHandler(&mockExportService{exportErr: service.ErrExportNoReservations})

	r := gin.New()
	r.GET("/export/reservations", h.ExportReservations)
	w := doRequest(r, "GET", "/export/reservations", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

func TestExportHandler_CalendarFeed_ContentType(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		feed: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	})

	r := gin.New()
	r.GET("/participants/:ci/calendar.ics", h.CalendarFeed)
	w := doRequest(r, "GET", "/participants/51234567/calendar.ics", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("意外的 Content-Type: %s", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Error("响应体应为 iCalendar 内容")
	}
}

func TestExportHandler_CalendarFeed_ParticipantNotFound(t *testing.T) {
	h := NewExportHandler(&mockExportService{feedErr: service.ErrParticipantNotFound})

	r := gin.New()
	r.GET("/participants/:ci/calendar.ics", h.CalendarFeed)
	w := doRequest(r, "GET", "/participants/00000000/calendar.ics", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
