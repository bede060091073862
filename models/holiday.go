package models

import "time"

type Holiday struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Date        string `json:"date" gorm:"size:10;not null;uniqueIndex"` // YYYY-MM-DD
	Description string `json:"description" gorm:"size:200;not null"`

	CreatedAt time.Time `json:"created_at"`
}
