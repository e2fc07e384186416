package model

import "time"

// Follow links a follower account to a followed account. Only exercised by
// seed data for now; the social graph has no dedicated endpoints yet.
type Follow struct {
	FollowerID int32 `gorm:"primaryKey" json:"followerId"`
	FollowedID int32 `gorm:"primaryKey" json:"followedId"`
	CreatedAt  time.Time `json:"createdAt"`
}
