package models

import "time"

// Employee is never hard-deleted: attendance rows keep referencing the id
// after removal, so "remove" only flips Active off.
type Employee struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:120;not null"`
	Active bool   `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
