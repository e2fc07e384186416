package model

import "time"

// AccountRole discriminates the account variants. Standard users author posts
// and favorite them; owners additionally claim locations and publish official
// responses. The admin role exists only as a token claim, it is never stored.
type AccountRole string

const (
	AccountRoleUser  AccountRole = "user"
	AccountRoleOwner AccountRole = "owner"
)

/*

Account is any authenticated identity, user and owner alike.

Id: primary key
CognitoId: the subject id asserted by the identity provider, unique
Role: account variant, see AccountRole

FavoritePosts: posts this account favorited, "many-to-many" through PostFavorite
ClaimedLocations: locations claimed by this account (owner variant only)
OfficialResponses: responses authored by this account (owner variant only)
Following / FollowedBy: the social graph, "many-to-many" through Follow

*/

type Account struct {
	Id                int32  `gorm:"primaryKey;autoIncrement" json:"id"`
	CognitoId         string `gorm:"uniqueIndex;not null" json:"cognitoId"`
	Username          string `gorm:"not null" json:"username"`
	Email             string `gorm:"not null" json:"email"`
	PhoneNumber       *string `json:"phoneNumber"`
	ProfilePictureUrl *string `json:"profilePictureUrl"`
	Role              AccountRole `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`

	Posts             []*Post             `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	FavoritePosts     []*Post             `gorm:"many2many:post_favorites;foreignKey:Id;joinForeignKey:UserID;References:Id;joinReferences:PostID" json:"favoritePosts,omitempty"`
	ClaimedLocations  []*Location         `gorm:"foreignKey:ClaimedByOwnerID" json:"claimedLocations,omitempty"`
	OfficialResponses []*OfficialResponse `gorm:"foreignKey:OwnerID" json:"officialResponses,omitempty"`
	Following         []*Account          `gorm:"many2many:follows;foreignKey:Id;joinForeignKey:FollowerID;References:Id;joinReferences:FollowedID" json:"following,omitempty"`
}
