package model

import "time"

/*

PostFavorite is a "many-to-many" relation of an account favoriting a post.

The composite primary key doubles as the uniqueness invariant: at most one
favorite per (user, post) pair. A concurrent duplicate insert is rejected by
the store, which the handler surfaces as "Post already favorited".

*/

type PostFavorite struct {
	UserID    int32 `gorm:"primaryKey" json:"userId"`
	PostID    int32 `gorm:"primaryKey" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
