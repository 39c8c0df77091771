//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "github.com/beluume/obligatorio-bases/pkg/errors"

	"github.com/beluume/obligatorio-bases/internal/model"
	"github.com/beluume/obligatorio-bases/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=salas password=salas_password dbname=salas_estudio_test sslmode=disable TimeZone=America/Montevideo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Building{},
		&model.Faculty{},
		&model.AcademicProgram{},
		&model.Participant{},
		&model.ParticipantProgram{},
		&model.Room{},
		&model.TimeSlot{},
		&model.Reservation{},
		&model.ReservationParticipant{},
		&model.Sanction{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	// AutoMigrate 不生成部分唯一索引，手工补齐（与正式迁移保持一致）
	err = testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_slot
		ON reservations (room_name, building, date, time_slot_id)
		WHERE status = 'active'
	`).Error
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建部分唯一索引失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (building *model.Building, room *model.Room, slot *model.TimeSlot, p *model.Participant, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	nano := time.Now().UnixNano()

	building = &model.Building{
		Name:       fmt.Sprintf("测试楼-%d", nano),
		Address:    "Av. 8 de Octubre 2738",
		Department: "Montevideo",
	}
	if err := testDB.WithContext(ctx).Create(building).Error; err != nil {
		t.Fatalf("创建楼栋失败: %v", err)
	}

	room = &model.Room{
		Name:       fmt.Sprintf("S-%d", nano),
		Building:   building.Name,
		Capacity:   6,
		AccessTier: model.TierOpen,
		Floor:      "2",
		Equipment:  "whiteboard",
	}
	if err := testDB.WithContext(ctx).Create(room).Error; err != nil {
		t.Fatalf("创建自习室失败: %v", err)
	}

	slot = &model.TimeSlot{
		StartTime: "08:00",
		EndTime:   "09:00",
	}
	if err := testDB.WithContext(ctx).Create(slot).Error; err != nil {
		t.Fatalf("创建时间段失败: %v", err)
	}

	p = &model.Participant{
		CI:        fmt.Sprintf("%d", nano%100000000),
		FirstName: "Ana",
		LastName:  "García",
		Email:     fmt.Sprintf("ana%d@correo.ucu.edu.uy", nano),
	}
	if err := testDB.WithContext(ctx).Create(p).Error; err != nil {
		t.Fatalf("创建参与者失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("ci = ?", p.CI).Delete(&model.Participant{})
		testDB.Where("time_slot_id = ?", slot.TimeSlotID).Delete(&model.TimeSlot{})
		testDB.Where("name = ? AND building = ?", room.Name, room.Building).Delete(&model.Room{})
		testDB.Where("name = ?", building.Name).Delete(&model.Building{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Slot Collision（部分唯一索引）
// ═══════════════════════════════════════════════════════════

func TestReservation_ActiveSlotCollision(t *testing.T) {
	_, room, slot, p, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	first := &model.Reservation{
		RoomName:   room.Name,
		Building:   room.Building,
		Date:       date,
		TimeSlotID: slot.TimeSlotID,
		Status:     model.StatusActive,
	}
	if err := repo.Reservation.CreateWithParticipant(ctx, first, p.CI, time.Now()); err != nil {
		t.Fatalf("创建首个预约失败: %v", err)
	}
	defer testDB.Where("reservation_id = ?", first.ReservationID).Delete(&model.Reservation{})

	// 同一槽位的第二个 active 预约必须被拒绝
	second := &model.Reservation{
		RoomName:   room.Name,
		Building:   room.Building,
		Date:       date,
		TimeSlotID: slot.TimeSlotID,
		Status:     model.StatusActive,
	}
	err := repo.Reservation.CreateWithParticipant(ctx, second, p.CI, time.Now())
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("期望 ErrDuplicatedKey，实际: %v", err)
	}

	// 取消首个预约后，同一槽位可以重新预约
	if err := repo.Reservation.UpdateStatus(ctx, first.ReservationID, model.StatusActive, model.StatusCancelled); err != nil {
		t.Fatalf("取消预约失败: %v", err)
	}
	third := &model.Reservation{
		RoomName:   room.Name,
		Building:   room.Building,
		Date:       date,
		TimeSlotID: slot.TimeSlotID,
		Status:     model.StatusActive,
	}
	if err := repo.Reservation.CreateWithParticipant(ctx, third, p.CI, time.Now()); err != nil {
		t.Fatalf("取消后重新预约失败: %v", err)
	}
	testDB.Where("reservation_id = ?", third.ReservationID).Delete(&model.Reservation{})
}

// ═══════════════════════════════════════════════════════════
// Test: Status Guard
// ═══════════════════════════════════════════════════════════

func TestReservation_StatusGuard(t *testing.T) {
	_, room, slot, p, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	res := &model.Reservation{
		RoomName:   room.Name,
		Building:   room.Building,
		Date:       time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		TimeSlotID: slot.TimeSlotID,
		Status:     model.StatusActive,
	}
	if err := repo.Reservation.CreateWithParticipant(ctx, res, p.CI, time.Now()); err != nil {
		t.Fatalf("创建预约失败: %v", err)
	}
	defer testDB.Where("reservation_id = ?", res.ReservationID).Delete(&model.Reservation{})

	if err := repo.Reservation.UpdateStatus(ctx, res.ReservationID, model.StatusActive, model.StatusCompleted); err != nil {
		t.Fatalf("完结预约失败: %v", err)
	}

	// 终态之后再迁移必须失败（状态守卫 RowsAffected == 0）
	err := repo.Reservation.UpdateStatus(ctx, res.ReservationID, model.StatusActive, model.StatusCancelled)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("期望 ErrOptimisticLock，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Cascade Delete
// ═══════════════════════════════════════════════════════════

func TestReservation_DeleteCascadesParticipants(t *testing.T) {
	_, room, slot, p, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	res := &model.Reservation{
		RoomName:   room.Name,
		Building:   room.Building,
		Date:       time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
		TimeSlotID: slot.TimeSlotID,
		Status:     model.StatusActive,
	}
	if err := repo.Reservation.CreateWithParticipant(ctx, res, p.CI, time.Now()); err != nil {
		t.Fatalf("创建预约失败: %v", err)
	}

	if err := repo.Reservation.Delete(ctx, res.ReservationID); err != nil {
		t.Fatalf("删除预约失败: %v", err)
	}

	var linkCount int64
	testDB.Model(&model.ReservationParticipant{}).
		Where("reservation_id = ?", res.ReservationID).
		Count(&linkCount)
	if linkCount != 0 {
		t.Errorf("期望出席关系级联删除，实际残留 %d 条", linkCount)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock（Room 版本号）
// ═══════════════════════════════════════════════════════════

func TestOptimisticLock_Room_ConflictDetected(t *testing.T) {
	_, room, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 以当前版本更新一次，版本号递增
	room.Capacity = 8
	if err := repo.Room.Update(ctx, room); err != nil {
		t.Fatalf("首次更新失败: %v", err)
	}

	// 用旧版本再次更新，应检测到冲突
	stale := *room
	stale.Version = room.Version - 1
	stale.Capacity = 10
	err := repo.Room.Update(ctx, &stale)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("期望 ErrOptimisticLock，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Open-tier Quota Query
// ═══════════════════════════════════════════════════════════

func TestReservation_ListActiveOpenTier(t *testing.T) {
	_, room, slot, p, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	res := &model.Reservation{
		RoomName:   room.Name,
		Building:   room.Building,
		Date:       date,
		TimeSlotID: slot.TimeSlotID,
		Status:     model.StatusActive,
	}
	if err := repo.Reservation.CreateWithParticipant(ctx, res, p.CI, time.Now()); err != nil {
		t.Fatalf("创建预约失败: %v", err)
	}
	defer testDB.Where("reservation_id = ?", res.ReservationID).Delete(&model.Reservation{})

	list, err := repo.Reservation.ListActiveOpenTier(ctx, p.CI, date, date)
	if err != nil {
		t.Fatalf("ListActiveOpenTier 失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 条 open 级预约，实际 %d", len(list))
	}
	if list[0].TimeSlot == nil {
		t.Fatal("期望预约携带时间段，实际为 nil")
	}

	// 取消后不再计入配额窗口
	if err := repo.Reservation.UpdateStatus(ctx, res.ReservationID, model.StatusActive, model.StatusCancelled); err != nil {
		t.Fatalf("取消预约失败: %v", err)
	}
	list, err = repo.Reservation.ListActiveOpenTier(ctx, p.CI, date, date)
	if err != nil {
		t.Fatalf("ListActiveOpenTier 失败: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("期望取消后为 0 条，实际 %d", len(list))
	}
}
