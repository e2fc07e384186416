package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/vibecheck/vibecheck/model"
	"github.com/vibecheck/vibecheck/server/middlewares"
)

type createAccountRequest struct {
	CognitoId string  `json:"cognitoId" binding:"required"`
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required"`
}

type updateAccountRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(c *gin.Context) {
	s.createAccount(c, model.AccountRoleUser)
}

// GetUser handles GET /users/:cognitoId. Fetching your own missing account
// provisions it lazily from the token claims.
func (s *Server) GetUser(c *gin.Context) {
	s.getAccount(c, model.AccountRoleUser, "FavoritePosts")
}

// UpdateUser handles PUT /users/:cognitoId, self only.
func (s *Server) UpdateUser(c *gin.Context) {
	s.updateAccount(c, model.AccountRoleUser)
}

// AddFavoritePost handles POST /users/:cognitoId/favorites/:postId. A second
// favorite of the same post is a 400 the client treats as "toggle to remove".
func (s *Server) AddFavoritePost(c *gin.Context) {
	user, ok := s.accountByParam(c, model.AccountRoleUser)
	if !ok {
		return
	}

	postId, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	var post model.Post
	postResult := s.DB.Where("id = ?", postId).Limit(1).Find(&post)
	if postResult.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error adding favorite post: "+postResult.Error.Error())
		return
	}
	if postResult.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "Post not found")
		return
	}

	var existing model.PostFavorite
	existingResult := s.DB.Where("user_id = ? AND post_id = ?", user.Id, post.Id).Limit(1).Find(&existing)
	if existingResult.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error adding favorite post: "+existingResult.Error.Error())
		return
	}
	if existingResult.RowsAffected > 0 {
		errorJSON(c, http.StatusBadRequest, "Post already favorited")
		return
	}

	if err := s.DB.Create(&model.PostFavorite{UserID: user.Id, PostID: post.Id}).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error adding favorite post: "+err.Error())
		return
	}

	updated, ok := s.reloadAccount(c, user.Id, "FavoritePosts")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, updated)
}

// RemoveFavoritePost handles DELETE /users/:cognitoId/favorites/:postId.
func (s *Server) RemoveFavoritePost(c *gin.Context) {
	user, ok := s.accountByParam(c, model.AccountRoleUser)
	if !ok {
		return
	}

	postId, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	if err := s.DB.Where("user_id = ? AND post_id = ?", user.Id, postId).Delete(&model.PostFavorite{}).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error removing favorite post: "+err.Error())
		return
	}

	updated, ok := s.reloadAccount(c, user.Id, "FavoritePosts")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, updated)
}

// createAccount inserts a new account of the given role.
func (s *Server) createAccount(c *gin.Context, role model.AccountRole) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid account payload: "+err.Error())
		return
	}

	account := model.Account{
		CognitoId: req.CognitoId,
		Username:  req.Username,
		Email:     req.Email,
		Role:      role,
	}
	if err := s.DB.Create(&account).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating account: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, account)
}

// getAccount fetches the account of the given role by cognito id, lazily
// provisioning the caller's own missing row.
func (s *Server) getAccount(c *gin.Context, role model.AccountRole, preloads ...string) {
	cognitoId := c.Param("cognitoId")

	tx := s.DB.Where("cognito_id = ? AND role = ?", cognitoId, role)
	for _, preload := range preloads {
		tx = tx.Preload(preload)
	}
	var account model.Account
	result := tx.Limit(1).Find(&account)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching account: "+result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		c.JSON(http.StatusOK, account)
		return
	}

	if principal, ok := middlewares.GetPrincipal(c); ok && principal.Id == cognitoId {
		provisioned, ok := s.principalAccount(c, role)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, provisioned)
		return
	}
	errorJSON(c, http.StatusNotFound, "Account not found")
}

// updateAccount applies a settings update to the caller's own account.
func (s *Server) updateAccount(c *gin.Context, role model.AccountRole) {
	cognitoId := c.Param("cognitoId")
	if principal, ok := middlewares.GetPrincipal(c); ok && principal.Id != cognitoId {
		errorJSON(c, http.StatusForbidden, "Forbidden")
		return
	}

	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid account payload: "+err.Error())
		return
	}

	var account model.Account
	result := s.DB.Where("cognito_id = ? AND role = ?", cognitoId, role).Limit(1).Find(&account)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating account: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "Account not found")
		return
	}

	if err := copier.CopyWithOption(&account, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating account: "+err.Error())
		return
	}
	if err := s.DB.Save(&account).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating account: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, account)
}

// accountByParam fetches the account referenced by the :cognitoId route
// parameter, 404ing when absent.
func (s *Server) accountByParam(c *gin.Context, role model.AccountRole) (*model.Account, bool) {
	cognitoId := c.Param("cognitoId")
	var account model.Account
	result := s.DB.Where("cognito_id = ? AND role = ?", cognitoId, role).Limit(1).Find(&account)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching account: "+result.Error.Error())
		return nil, false
	}
	if result.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "User not found")
		return nil, false
	}
	return &account, true
}

func (s *Server) reloadAccount(c *gin.Context, id int32, preloads ...string) (*model.Account, bool) {
	tx := s.DB.Where("id = ?", id)
	for _, preload := range preloads {
		tx = tx.Preload(preload)
	}
	var account model.Account
	if err := tx.Limit(1).Find(&account).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching account: "+err.Error())
		return nil, false
	}
	return &account, true
}
