package model

// Tag is a hashtag-like label, created on demand the first time a post
// references its name.
type Tag struct {
	Id      int32  `gorm:"primaryKey;autoIncrement" json:"id"`
	TagName string `gorm:"uniqueIndex;not null" json:"tagName"`

	Posts []*Post `gorm:"many2many:post_tags;foreignKey:Id;joinForeignKey:TagID;References:Id;joinReferences:PostID" json:"posts,omitempty"`
}

// PostTag links a post to one of its tags.
type PostTag struct {
	PostID int32 `gorm:"primaryKey" json:"postId"`
	TagID  int32 `gorm:"primaryKey" json:"tagId"`
}
