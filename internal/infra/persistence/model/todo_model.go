package model

import "time"

// TodoModel mirrors the 'todos' table. OwnerID references users.id.
type TodoModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Text      string `gorm:"type:varchar(500);not null"`
	Done      bool   `gorm:"not null;default:false"`
	OwnerID   int64  `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TodoModel) TableName() string {
	return "todos"
}
