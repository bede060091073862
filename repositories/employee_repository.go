package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/webwatchtech/telegram-attendance-bot/models"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(name string) (*models.Employee, error) {
	emp := models.Employee{Name: name, Active: true}
	if err := r.db.Create(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListActive returns active employees in insertion order. This ordering is
// what the session snapshot and the #n short ids are built on.
func (r *EmployeeRepository) ListActive() ([]models.Employee, error) {
	var emps []models.Employee
	if err := r.db.Where("active = ?", true).Order("id ASC").Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

func (r *EmployeeRepository) Get(id uint) (*models.Employee, error) {
	var emp models.Employee
	if err := r.db.First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Deactivate soft-deletes: the row stays so historical attendance keeps
// resolving to a name.
func (r *EmployeeRepository) Deactivate(id uint) error {
	res := r.db.Model(&models.Employee{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
