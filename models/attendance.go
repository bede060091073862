package models

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// One row per employee per day. The composite unique index is the backstop
// against double-recording a day, regardless of which write path raced.
type Attendance struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	EmployeeID uint   `json:"employee_id" gorm:"not null;uniqueIndex:idx_employee_date,priority:1"`
	Date       string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_employee_date,priority:2"` // YYYY-MM-DD
	Status     string `json:"status" gorm:"size:10;not null"`                                        // present | absent
	Reason     string `json:"reason" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}
