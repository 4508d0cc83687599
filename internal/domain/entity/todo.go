package entity

import "time"

// Todo is an owned resource. OwnerID is fixed at creation and every
// subsequent read, update or delete must match it against the caller.
type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	OwnerID   int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
