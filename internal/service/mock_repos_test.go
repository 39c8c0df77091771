package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/dto"
	"github.com/beluume/obligatorio-bases/internal/model"
	"github.com/beluume/obligatorio-bases/internal/repository"
	pkgerrors "github.com/beluume/obligatorio-bases/pkg/errors"
)

// ── Mock ParticipantRepository ──

type mockParticipantRepo struct {
	participants map[string]*model.Participant
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{participants: make(map[string]*model.Participant)}
}

func (m *mockParticipantRepo) Create(_ context.Context, p *model.Participant) error {
	if _, ok := m.participants[p.CI]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.participants[p.CI] = p
	return nil
}

func (m *mockParticipantRepo) GetByCI(_ context.Context, ci string) (*model.Participant, error) {
	if p, ok := m.participants[ci]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) GetByEmail(_ context.Context, email string) (*model.Participant, error) {
	for _, p := range m.participants {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) List(_ context.Context, _, _ int) ([]model.Participant, int64, error) {
	var result []model.Participant
	for _, p := range m.participants {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockParticipantRepo) Update(_ context.Context, p *model.Participant) error {
	m.participants[p.CI] = p
	return nil
}

func (m *mockParticipantRepo) Delete(_ context.Context, ci string) error {
	delete(m.participants, ci)
	return nil
}

func (m *mockParticipantRepo) Enroll(_ context.Context, _ *model.ParticipantProgram) error {
	return nil
}

// ── Mock BuildingRepository ──

type mockBuildingRepo struct {
	buildings map[string]*model.Building
}

func newMockBuildingRepo() *mockBuildingRepo {
	return &mockBuildingRepo{buildings: make(map[string]*model.Building)}
}

func (m *mockBuildingRepo) Create(_ context.Context, b *model.Building) error {
	if _, ok := m.buildings[b.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.buildings[b.Name] = b
	return nil
}

func (m *mockBuildingRepo) GetByName(_ context.Context, name string) (*model.Building, error) {
	if b, ok := m.buildings[name]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBuildingRepo) List(_ context.Context) ([]model.Building, error) {
	var result []model.Building
	for _, b := range m.buildings {
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBuildingRepo) Update(_ context.Context, b *model.Building) error {
	m.buildings[b.Name] = b
	return nil
}

func (m *mockBuildingRepo) Delete(_ context.Context, name string) error {
	delete(m.buildings, name)
	return nil
}

// ── Mock FacultyRepository ──

type mockFacultyRepo struct {
	faculties map[string]*model.Faculty
}

func newMockFacultyRepo() *mockFacultyRepo {
	return &mockFacultyRepo{faculties: make(map[string]*model.Faculty)}
}

func (m *mockFacultyRepo) Create(_ context.Context, f *model.Faculty) error {
	if f.FacultyID == "" {
		f.FacultyID = "fac-" + f.Name
	}
	m.faculties[f.FacultyID] = f
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	if f, ok := m.faculties[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) List(_ context.Context) ([]model.Faculty, error) {
	var result []model.Faculty
	for _, f := range m.faculties {
		result = append(result, *f)
	}
	return result, nil
}

func (m *mockFacultyRepo) Delete(_ context.Context, id string) error {
	delete(m.faculties, id)
	return nil
}

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	programs map[string]*model.AcademicProgram
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{programs: make(map[string]*model.AcademicProgram)}
}

func (m *mockProgramRepo) Create(_ context.Context, p *model.AcademicProgram) error {
	if _, ok := m.programs[p.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.programs[p.Name] = p
	return nil
}

func (m *mockProgramRepo) GetByName(_ context.Context, name string) (*model.AcademicProgram, error) {
	if p, ok := m.programs[name]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) List(_ context.Context) ([]model.AcademicProgram, error) {
	var result []model.AcademicProgram
	for _, p := range m.programs {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProgramRepo) Delete(_ context.Context, name string) error {
	delete(m.programs, name)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func roomKey(name, building string) string { return name + "|" + building }

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	key := roomKey(room.Name, room.Building)
	if _, ok := m.rooms[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if room.Version == 0 {
		room.Version = 1
	}
	m.rooms[key] = room
	return nil
}

func (m *mockRoomRepo) Get(_ context.Context, name, building string) (*model.Room, error) {
	if r, ok := m.rooms[roomKey(name, building)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, building string, tier model.AccessTier) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if building != "" && r.Building != building {
			continue
		}
		if tier != "" && r.AccessTier != tier {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	key := roomKey(room.Name, room.Building)
	existing, ok := m.rooms[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if existing.Version != room.Version {
		return pkgerrors.ErrOptimisticLock
	}
	room.Version++
	m.rooms[key] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, name, building string) error {
	delete(m.rooms, roomKey(name, building))
	return nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot
	next  int
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) Create(_ context.Context, slot *model.TimeSlot) error {
	if slot.TimeSlotID == "" {
		m.next++
		slot.TimeSlotID = fmt.Sprintf("ts-%d", m.next)
	}
	m.slots[slot.TimeSlotID] = slot
	return nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) List(_ context.Context) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockTimeSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

// ── Mock ReservationRepository ──
// 持有 room / slot mock 的引用，以复现真实仓储的 JOIN 语义与
// active 槽位唯一约束。

type mockReservationRepo struct {
	reservations map[uint]*model.Reservation
	links        map[uint][]*model.ReservationParticipant
	rooms        *mockRoomRepo
	slots        *mockTimeSlotRepo
	nextID       uint

	// duplicateOnCreate 模拟"事前检查通过、提交时被唯一索引拦截"的竞态窗口
	duplicateOnCreate bool
}

func newMockReservationRepo(rooms *mockRoomRepo, slots *mockTimeSlotRepo) *mockReservationRepo {
	return &mockReservationRepo{
		reservations: make(map[uint]*model.Reservation),
		links:        make(map[uint][]*model.ReservationParticipant),
		rooms:        rooms,
		slots:        slots,
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (m *mockReservationRepo) CreateWithParticipant(_ context.Context, res *model.Reservation, ci string, requestedAt time.Time) error {
	if m.duplicateOnCreate {
		m.duplicateOnCreate = false
		return gorm.ErrDuplicatedKey
	}

	// 模拟部分唯一索引：同一 (room, building, date, slot) 至多一条 active
	for _, existing := range m.reservations {
		if existing.Status == model.StatusActive &&
			existing.RoomName == res.RoomName &&
			existing.Building == res.Building &&
			existing.TimeSlotID == res.TimeSlotID &&
			sameDate(existing.Date, res.Date) {
			return gorm.ErrDuplicatedKey
		}
	}

	m.nextID++
	res.ReservationID = m.nextID
	m.reservations[res.ReservationID] = res
	m.links[res.ReservationID] = append(m.links[res.ReservationID], &model.ReservationParticipant{
		ReservationID: res.ReservationID,
		CI:            ci,
		RequestedAt:   requestedAt,
	})
	return nil
}

func (m *mockReservationRepo) GetByID(_ context.Context, id uint) (*model.Reservation, error) {
	res, ok := m.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *res
	m.hydrate(&out)
	return &out, nil
}

func (m *mockReservationRepo) List(_ context.Context, filter repository.ReservationFilter, offset, limit int) ([]model.Reservation, int64, error) {
	var result []model.Reservation
	for _, res := range m.reservations {
		if filter.RoomName != "" && res.RoomName != filter.RoomName {
			continue
		}
		if filter.Building != "" && res.Building != filter.Building {
			continue
		}
		if filter.Status != "" && res.Status != filter.Status {
			continue
		}
		if filter.DateFrom != nil && res.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && res.Date.After(*filter.DateTo) {
			continue
		}
		out := *res
		m.hydrate(&out)
		result = append(result, out)
	}
	total := int64(len(result))
	if offset > len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockReservationRepo) ListByParticipant(_ context.Context, ci string) ([]model.Reservation, error) {
	var result []model.Reservation
	for id, links := range m.links {
		for _, link := range links {
			if link.CI == ci {
				out := *m.reservations[id]
				m.hydrate(&out)
				result = append(result, out)
				break
			}
		}
	}
	return result, nil
}

func (m *mockReservationRepo) CountActiveBySlot(_ context.Context, roomName, building string, date time.Time, slotID string) (int64, error) {
	var count int64
	for _, res := range m.reservations {
		if res.Status == model.StatusActive &&
			res.RoomName == roomName &&
			res.Building == building &&
			res.TimeSlotID == slotID &&
			sameDate(res.Date, date) {
			count++
		}
	}
	return count, nil
}

func (m *mockReservationRepo) ListActiveOpenTier(_ context.Context, ci string, from, to time.Time) ([]model.Reservation, error) {
	var result []model.Reservation
	for id, res := range m.reservations {
		if res.Status != model.StatusActive {
			continue
		}
		if res.Date.Before(from) || res.Date.After(to) {
			continue
		}
		room, ok := m.rooms.rooms[roomKey(res.RoomName, res.Building)]
		if !ok || room.AccessTier != model.TierOpen {
			continue
		}
		participates := false
		for _, link := range m.links[id] {
			if link.CI == ci {
				participates = true
				break
			}
		}
		if !participates {
			continue
		}
		out := *res
		m.hydrate(&out)
		result = append(result, out)
	}
	return result, nil
}

func (m *mockReservationRepo) UpdateStatus(_ context.Context, id uint, from, to model.ReservationStatus) error {
	res, ok := m.reservations[id]
	if !ok || res.Status != from {
		return pkgerrors.ErrOptimisticLock
	}
	res.Status = to
	return nil
}

func (m *mockReservationRepo) UpdateAttendance(_ context.Context, reservationID uint, ci string, attendance string) (int64, error) {
	for _, link := range m.links[reservationID] {
		if link.CI == ci {
			link.Attendance = &attendance
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockReservationRepo) Delete(_ context.Context, id uint) error {
	delete(m.reservations, id)
	delete(m.links, id)
	return nil
}

// hydrate 填充真实仓储 Preload 会带出的关联
func (m *mockReservationRepo) hydrate(res *model.Reservation) {
	if slot, ok := m.slots.slots[res.TimeSlotID]; ok {
		res.TimeSlot = slot
	}
	res.Participants = nil
	for _, link := range m.links[res.ReservationID] {
		res.Participants = append(res.Participants, *link)
	}
}

// ── Mock SanctionRepository ──

type mockSanctionRepo struct {
	sanctions map[string]*model.Sanction
	next      int
}

func newMockSanctionRepo() *mockSanctionRepo {
	return &mockSanctionRepo{sanctions: make(map[string]*model.Sanction)}
}

func (m *mockSanctionRepo) Create(_ context.Context, sanction *model.Sanction) error {
	if sanction.SanctionID == "" {
		m.next++
		sanction.SanctionID = fmt.Sprintf("sanction-%d", m.next)
	}
	m.sanctions[sanction.SanctionID] = sanction
	return nil
}

func (m *mockSanctionRepo) List(_ context.Context, ci string, _, _ int) ([]model.Sanction, int64, error) {
	var result []model.Sanction
	for _, s := range m.sanctions {
		if ci != "" && s.CI != ci {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSanctionRepo) ListActiveByCIAndDate(_ context.Context, ci string, date time.Time) ([]model.Sanction, error) {
	var result []model.Sanction
	for _, s := range m.sanctions {
		if s.CI == ci && !date.Before(s.StartDate) && !date.After(s.EndDate) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSanctionRepo) Delete(_ context.Context, id string) error {
	delete(m.sanctions, id)
	return nil
}

// ── Mock ReportRepository ──

type mockReportRepo struct {
	occupancy  []dto.OccupancyReportRow
	usage      []dto.ParticipantUsageRow
	attendance []dto.AttendanceReportRow
	calls      int
}

func (m *mockReportRepo) OccupancyByRoom(_ context.Context, _, _ time.Time) ([]dto.OccupancyReportRow, error) {
	m.calls++
	return m.occupancy, nil
}

func (m *mockReportRepo) ParticipantUsage(_ context.Context, _, _ time.Time, _ int) ([]dto.ParticipantUsageRow, error) {
	m.calls++
	return m.usage, nil
}

func (m *mockReportRepo) AttendanceByRoom(_ context.Context, _, _ time.Time) ([]dto.AttendanceReportRow, error) {
	m.calls++
	return m.attendance, nil
}

// ── 测试用 Repository 聚合 ──

func newTestRepository() *repository.Repository {
	rooms := newMockRoomRepo()
	slots := newMockTimeSlotRepo()
	return &repository.Repository{
		Participant: newMockParticipantRepo(),
		Building:    newMockBuildingRepo(),
		Faculty:     newMockFacultyRepo(),
		Program:     newMockProgramRepo(),
		Room:        rooms,
		TimeSlot:    slots,
		Reservation: newMockReservationRepo(rooms, slots),
		Sanction:    newMockSanctionRepo(),
		Report:      &mockReportRepo{},
	}
}
