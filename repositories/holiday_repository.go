package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/webwatchtech/telegram-attendance-bot/models"
)

type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// Create declares a holiday. A date can only be a holiday once.
func (r *HolidayRepository) Create(date, description string) error {
	hol := models.Holiday{Date: date, Description: description}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&hol)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *HolidayRepository) List() ([]models.Holiday, error) {
	var hols []models.Holiday
	if err := r.db.Order("date ASC").Find(&hols).Error; err != nil {
		return nil, err
	}
	return hols, nil
}

func (r *HolidayRepository) ListRange(start, end string) ([]models.Holiday, error) {
	var hols []models.Holiday
	err := r.db.Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&hols).Error
	if err != nil {
		return nil, err
	}
	return hols, nil
}

func (r *HolidayRepository) Exists(date string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Holiday{}).Where("date = ?", date).Count(&n).Error
	return n > 0, err
}

// Set returns the holiday dates in [start, end] as a lookup set, for
// working-day generation.
func (r *HolidayRepository) Set(start, end string) (map[string]bool, error) {
	hols, err := r.ListRange(start, end)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(hols))
	for _, h := range hols {
		set[h.Date] = true
	}
	return set, nil
}

func (r *HolidayRepository) DeleteByDate(date string) error {
	res := r.db.Where("date = ?", date).Delete(&models.Holiday{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
