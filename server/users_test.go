package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibecheck/vibecheck/model"
	"github.com/vibecheck/vibecheck/utils"
)

type accountResponse struct {
	Id            int32  `json:"id"`
	CognitoId     string `json:"cognitoId"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	FavoritePosts []struct {
		Id int32 `json:"id"`
	} `json:"favoritePosts"`
	ClaimedLocations []struct {
		Id int32 `json:"id"`
	} `json:"claimedLocations"`
}

func TestCreateUser(t *testing.T) {
	utils.SkipUnlessTestDB(t)
	db, _ := utils.CreateTempDB(t)
	router := prepareTestServer(db)

	token := testToken(t, "cognito-new", "user")
	w := doRequest(t, router, http.MethodPost, "/users", token, gin.H{
		"cognitoId": "cognito-new",
		"username":  "newcomer",
		"email":     "newcomer@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created accountResponse
	decodeBody(t, w, &created)
	assert.Equal(t, "cognito-new", created.CognitoId)
	assert.Equal(t, "newcomer", created.Username)
	assert.Equal(t, string(model.AccountRoleUser), created.Role)

	// Required fields are enforced at binding time.
	w = doRequest(t, router, http.MethodPost, "/users", token, gin.H{"username": "nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserLazyProvisioning(t *testing.T) {
	utils.SkipUnlessTestDB(t)
	db, _ := utils.CreateTempDB(t)
	router := prepareTestServer(db)

	// Fetching your own account before it exists provisions it from the
	// token claims.
	w := doRequest(t, router, http.MethodGet, "/users/cognito-fresh",
		testToken(t, "cognito-fresh", "user"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var provisioned accountResponse
	decodeBody(t, w, &provisioned)
	assert.Equal(t, "cognito-fresh", provisioned.CognitoId)
	assert.Equal(t, "cognito-fresh_name", provisioned.Username)
	assert.Equal(t, "cognito-fresh@example.com", provisioned.Email)

	// Fetching somebody else's missing account does not.
	w = doRequest(t, router, http.MethodGet, "/users/cognito-someone-else",
		testToken(t, "cognito-fresh", "user"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser(t *testing.T) {
	utils.SkipUnlessTestDB(t)
	db, _ := utils.CreateTempDB(t)
	router := prepareTestServer(db)

	alice := utils.TestCreateAccount(t, db, "cognito-alice", "alice", model.AccountRoleUser)
	utils.TestCreateAccount(t, db, "cognito-bob", "bob", model.AccountRoleUser)

	// Settings are self-service only.
	w := doRequest(t, router, http.MethodPut, "/users/cognito-alice",
		testToken(t, "cognito-bob", "user"), gin.H{"username": "impostor"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPut, "/users/cognito-alice",
		testToken(t, "cognito-alice", "user"),
		gin.H{"username": "alice_renamed", "phoneNumber": "+14155550100"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.Account
	require.NoError(t, db.First(&updated, alice.Id).Error)
	assert.Equal(t, "alice_renamed", updated.Username)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, "+14155550100", *updated.PhoneNumber)
	// Untouched fields keep their values.
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestFavoritePostRoundTrip(t *testing.T) {
	utils.SkipUnlessTestDB(t)
	db, _ := utils.CreateTempDB(t)
	router := prepareTestServer(db)

	alice := utils.TestCreateAccount(t, db, "cognito-alice", "alice", model.AccountRoleUser)
	bob := utils.TestCreateAccount(t, db, "cognito-bob", "bob", model.AccountRoleUser)
	cafe := utils.TestCreateLocation(t, db, "Base Cafe", 37.7749, -122.4194)
	post := utils.TestCreatePost(t, db, bob, cafe, "Worth favoriting")
	token := testToken(t, alice.CognitoId, "user")

	favoriteURL := fmt.Sprintf("/users/%s/favorites/%d", alice.CognitoId, post.Id)

	w := doRequest(t, router, http.MethodPost, favoriteURL, token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var favorited accountResponse
	decodeBody(t, w, &favorited)
	require.Len(t, favorited.FavoritePosts, 1)
	assert.Equal(t, post.Id, favorited.FavoritePosts[0].Id)

	// Favoriting twice is rejected, the client treats it as a toggle signal.
	w = doRequest(t, router, http.MethodPost, favoriteURL, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already favorited")

	w = doRequest(t, router, http.MethodDelete, favoriteURL, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var unfavorited accountResponse
	decodeBody(t, w, &unfavorited)
	assert.Len(t, unfavorited.FavoritePosts, 0)

	// Removing again is a no-op, not an error.
	w = doRequest(t, router, http.MethodDelete, favoriteURL, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/users/%s/favorites/999999", alice.CognitoId), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnerEndpoints(t *testing.T) {
	utils.SkipUnlessTestDB(t)
	db, _ := utils.CreateTempDB(t)
	router := prepareTestServer(db)

	ownerToken := testToken(t, "cognito-owner", "owner")
	w := doRequest(t, router, http.MethodPost, "/owners", ownerToken, gin.H{
		"cognitoId": "cognito-owner",
		"username":  "cafe_owner",
		"email":     "owner@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var owner accountResponse
	decodeBody(t, w, &owner)
	assert.Equal(t, string(model.AccountRoleOwner), owner.Role)

	// Owner endpoints are gated to the owner role.
	w = doRequest(t, router, http.MethodGet, "/owners/cognito-owner",
		testToken(t, "cognito-alice", "user"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Claimed locations ride along on the owner profile.
	cafe := utils.TestCreateLocation(t, db, "Claimed Cafe", 37.7749, -122.4194)
	require.NoError(t, db.Model(cafe).Update("claimed_by_owner_id", owner.Id).Error)

	w = doRequest(t, router, http.MethodGet, "/owners/cognito-owner", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fetched accountResponse
	decodeBody(t, w, &fetched)
	require.Len(t, fetched.ClaimedLocations, 1)
	assert.Equal(t, cafe.Id, fetched.ClaimedLocations[0].Id)
}
