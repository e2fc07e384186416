package model

import "time"

// OfficialResponse is the single reply an owner can publish on a post that
// reviews one of its claimed locations.
type OfficialResponse struct {
	Id        int32     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int32     `gorm:"uniqueIndex;not null" json:"postId"`
	OwnerID   int32     `gorm:"not null;index" json:"ownerId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
