package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vibecheck/vibecheck/model"
	"gorm.io/gorm"
)

// TestCreateAccount inserts an account with the given identity, does sanity
// checks and returns it.
func TestCreateAccount(t *testing.T, db *gorm.DB, cognitoId string, username string, role model.AccountRole) *model.Account {
	t.Helper()
	account := model.Account{
		CognitoId: cognitoId,
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
	}
	require.NoError(t, db.Create(&account).Error)
	require.NotZero(t, account.Id)
	return &account
}

// TestCreateLocation inserts a location at the given point and returns it.
func TestCreateLocation(t *testing.T, db *gorm.DB, name string, lat float64, lng float64) *model.Location {
	t.Helper()
	location := model.Location{
		Name:        name,
		Address:     name + " street",
		Coordinates: model.Point{Longitude: lng, Latitude: lat},
		Status:      model.LocationStatusUnverified,
	}
	require.NoError(t, db.Create(&location).Error)
	require.NotZero(t, location.Id)
	return &location
}

// TestCreatePost inserts a post for the given author and location and
// returns it.
func TestCreatePost(t *testing.T, db *gorm.DB, author *model.Account, location *model.Location, content string) *model.Post {
	t.Helper()
	post := model.Post{
		Content:    content,
		AuthorID:   author.Id,
		LocationID: location.Id,
	}
	require.NoError(t, db.Create(&post).Error)
	require.NotZero(t, post.Id)
	return &post
}

// TestCreateTag inserts a tag with the given name and links it to the post.
func TestCreateTag(t *testing.T, db *gorm.DB, post *model.Post, tagName string) *model.Tag {
	t.Helper()
	tag := model.Tag{TagName: tagName}
	require.NoError(t, db.Create(&tag).Error)
	require.NoError(t, db.Create(&model.PostTag{PostID: post.Id, TagID: tag.Id}).Error)
	return &tag
}
