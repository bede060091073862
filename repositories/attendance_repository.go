package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/webwatchtech/telegram-attendance-bot/models"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// DailyRow is one employee's record on one date, joined with the name.
type DailyRow struct {
	EmployeeID uint   `json:"employee_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
}

// EmployeeTotals is the grouped present/absent count for one employee over
// a range.
type EmployeeTotals struct {
	EmployeeID uint   `json:"employee_id"`
	Name       string `json:"name"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// InsertBatch writes records one by one, skipping rows whose (employee, date)
// key already exists. A failing row never aborts its siblings. Returns how
// many rows were actually inserted; err is the first hard (non-duplicate)
// failure, if any.
func (r *AttendanceRepository) InsertBatch(records []models.Attendance) (int, error) {
	inserted := 0
	var firstErr error
	for i := range records {
		res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records[i])
		if res.Error != nil {
			if firstErr == nil {
				firstErr = res.Error
			}
			continue
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, firstErr
}

// FindByDate lists every record on one date with employee names, in
// employee-insertion order.
func (r *AttendanceRepository) FindByDate(date string) ([]DailyRow, error) {
	var rows []DailyRow
	err := r.db.Table("attendances").
		Select("attendances.employee_id, employees.name, attendances.status, attendances.reason").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Where("attendances.date = ?", date).
		Order("attendances.employee_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AttendanceRepository) CountByDateStatus(date, status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Attendance{}).
		Where("date = ? AND status = ?", date, status).
		Count(&n).Error
	return n, err
}

// AggregateByEmployee groups records in [start, end] per employee. Rows come
// back in ascending employee id, which is the documented tie order for
// rankings built on top.
func (r *AttendanceRepository) AggregateByEmployee(start, end string) ([]EmployeeTotals, error) {
	var rows []EmployeeTotals
	err := r.db.Table("attendances").
		Select(`attendances.employee_id, employees.name,
			SUM(CASE WHEN attendances.status = 'present' THEN 1 ELSE 0 END) AS present,
			SUM(CASE WHEN attendances.status = 'absent' THEN 1 ELSE 0 END) AS absent`).
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Where("attendances.date >= ? AND attendances.date <= ?", start, end).
		Group("attendances.employee_id, employees.name").
		Order("attendances.employee_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DistinctDates returns the dates in [start, end] that have at least one
// record — the month's effective working days.
func (r *AttendanceRepository) DistinctDates(start, end string) ([]string, error) {
	var dates []string
	err := r.db.Model(&models.Attendance{}).
		Distinct("date").
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// TopReasons counts non-empty absence reasons in [start, end], most frequent
// first.
func (r *AttendanceRepository) TopReasons(start, end string, limit int) ([]ReasonCount, error) {
	var rows []ReasonCount
	err := r.db.Model(&models.Attendance{}).
		Select("reason, COUNT(*) AS count").
		Where("status = ? AND reason <> '' AND date >= ? AND date <= ?", models.StatusAbsent, start, end).
		Group("reason").
		Order("count DESC, reason ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RecentAbsences returns the newest absence rows for one employee.
func (r *AttendanceRepository) RecentAbsences(employeeID uint, limit int) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := r.db.Where("employee_id = ? AND status = ?", employeeID, models.StatusAbsent).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindOne returns the record for (employee, date), or nil when the day has
// no record — which reports treat differently from an absence.
func (r *AttendanceRepository) FindOne(employeeID uint, date string) (*models.Attendance, error) {
	var rec models.Attendance
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
