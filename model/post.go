package model

import "time"

/*

Post is a user-authored review of a location.

Title: optional headline
Content: the review body, required
MediaUrl: optional photo uploaded through the presigned-url flow
AuthorID / Author: the account that wrote the review, "belongs-to" relation
LocationID / Location: the reviewed location, "belongs-to" relation

Tags: hashtag labels, "many-to-many" through PostTag
FavoritedBy: accounts that favorited this post, "many-to-many" through PostFavorite
OfficialResponse: at most one response from the owner claiming the location

*/

type Post struct {
	Id         int32     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      *string   `json:"title"`
	Content    string    `gorm:"not null" json:"content"`
	MediaUrl   *string   `json:"mediaUrl"`
	AuthorID   int32     `gorm:"not null;index" json:"authorId"`
	Author     Account   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	LocationID int32     `gorm:"not null;index" json:"locationId"`
	Location   Location  `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Tags             []*Tag            `gorm:"many2many:post_tags;foreignKey:Id;joinForeignKey:PostID;References:Id;joinReferences:TagID" json:"tags,omitempty"`
	FavoritedBy      []*Account        `gorm:"many2many:post_favorites;foreignKey:Id;joinForeignKey:PostID;References:Id;joinReferences:UserID" json:"favoritedBy,omitempty"`
	OfficialResponse *OfficialResponse `gorm:"foreignKey:PostID" json:"officialResponse,omitempty"`
}
