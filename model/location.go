package model

import "time"

// LocationStatus only moves forward: UNVERIFIED rows become VERIFIED or
// ARCHIVED through an owner/admin action, never the other way around.
type LocationStatus string

const (
	LocationStatusUnverified LocationStatus = "UNVERIFIED"
	LocationStatusVerified   LocationStatus = "VERIFIED"
	LocationStatusArchived   LocationStatus = "ARCHIVED"
)

/*

Location is a point of interest that posts review.

Coordinates: the geographic point, stored as PostGIS geometry(Point,4326).
	Two locations should not exist within ProximityThresholdMeters of each
	other; this is enforced opportunistically at post-creation time by
	query.FindOrCreateLocation, not by a database constraint.
ClaimedByOwnerID: the owner account that claimed this location, if any

*/

type Location struct {
	Id               int32          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	Address          string         `gorm:"not null" json:"address"`
	Coordinates      Point          `json:"coordinates"`
	Status           LocationStatus `gorm:"type:varchar(16);not null;default:'UNVERIFIED'" json:"status"`
	ClaimedByOwnerID *int32         `json:"claimedByOwnerId"`
	ClaimedBy        *Account       `gorm:"foreignKey:ClaimedByOwnerID" json:"claimedBy,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`

	Posts []*Post `gorm:"foreignKey:LocationID" json:"posts,omitempty"`
}
