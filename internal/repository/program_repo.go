package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/beluume/obligatorio-bases/internal/model"
)

// FacultyRepository 学院数据访问接口
type FacultyRepository interface {
	Create(ctx context.Context, f *model.Faculty) error
	GetByID(ctx context.Context, id string) (*model.Faculty, error)
	List(ctx context.Context) ([]model.Faculty, error)
	Delete(ctx context.Context, id string) error
}

// ProgramRepository 学术项目数据访问接口
type ProgramRepository interface {
	Create(ctx context.Context, p *model.AcademicProgram) error
	GetByName(ctx context.Context, name string) (*model.AcademicProgram, error)
	List(ctx context.Context) ([]model.AcademicProgram, error)
	Delete(ctx context.Context, name string) error
}

// ── Faculty Repository 实现 ──

type facultyRepo struct {
	db *gorm.DB
}

func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) Create(ctx context.Context, f *model.Faculty) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *facultyRepo) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	var f model.Faculty
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", id).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facultyRepo) List(ctx context.Context) ([]model.Faculty, error) {
	var faculties []model.Faculty
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&faculties).Error
	return faculties, err
}

func (r *facultyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("faculty_id = ?", id).
		Delete(&model.Faculty{}).Error
}

// ── Program Repository 实现 ──

type programRepo struct {
	db *gorm.DB
}

func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) Create(ctx context.Context, p *model.AcademicProgram) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *programRepo) GetByName(ctx context.Context, name string) (*model.AcademicProgram, error) {
	var p model.AcademicProgram
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("name = ?", name).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *programRepo) List(ctx context.Context) ([]model.AcademicProgram, error) {
	var programs []model.AcademicProgram
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Order("name ASC").
		Find(&programs).Error
	return programs, err
}

func (r *programRepo) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&model.AcademicProgram{}).Error
}
