package db

import "time"

type userModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

// alertModel has no soft-delete column on purpose: a deleted alert is gone,
// and the idempotent-delete contract rests on RowsAffected of a hard delete.
type alertModel struct {
	ID        string  `gorm:"primaryKey;size:36"`
	OwnerID   string  `gorm:"index;not null"`
	Symbol    string  `gorm:"not null"`
	Threshold float64 `gorm:"not null"`
	Condition string  `gorm:"not null"`
	CreatedAt time.Time
}

func (alertModel) TableName() string { return "alerts" }
