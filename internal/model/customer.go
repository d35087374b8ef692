package model

import "time"

type Customer struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"index;not null"`
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
