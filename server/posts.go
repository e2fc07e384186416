package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/vibecheck/vibecheck/model"
	"github.com/vibecheck/vibecheck/server/middlewares"
	"github.com/vibecheck/vibecheck/server/query"
	"gorm.io/gorm"
)

type createPostRequest struct {
	Title           *string  `json:"title"`
	Content         string   `json:"content" binding:"required"`
	MediaUrl        *string  `json:"mediaUrl"`
	LocationName    string   `json:"locationName" binding:"required"`
	LocationAddress string   `json:"locationAddress" binding:"required"`
	Latitude        *float64 `json:"latitude" binding:"required"`
	Longitude       *float64 `json:"longitude" binding:"required"`
	Tags            []string `json:"tags"`
}

type updatePostRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	MediaUrl *string   `json:"mediaUrl"`
	Tags     *[]string `json:"tags"`
}

type officialResponseRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListPosts handles GET /posts.
func (s *Server) ListPosts(c *gin.Context) {
	params := queryParams(c)
	frags, err := query.BuildPostPredicates(s.DB, params)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching posts: "+err.Error())
		return
	}

	page := query.ParsePagination(params, query.DefaultPostLimit)
	sql, args := query.BuildPostListSQL(frags, page)

	rows := []query.PostRow{}
	if err := s.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching posts: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetPost handles GET /posts/:id.
func (s *Server) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	row, found, err := s.postRow(int32(id))
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching post: "+err.Error())
		return
	}
	if !found {
		errorJSON(c, http.StatusNotFound, "Post not found")
		return
	}
	c.JSON(http.StatusOK, row)
}

// CreatePost handles POST /posts: resolve-or-create the location, insert the
// post and its tag links, all in one transaction, then return the full
// joined representation.
func (s *Server) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post payload: "+err.Error())
		return
	}
	if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
		errorJSON(c, http.StatusBadRequest, "Invalid coordinates")
		return
	}

	author, ok := s.principalAccount(c, model.AccountRoleUser)
	if !ok {
		return
	}

	var created model.Post
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		location, err := query.FindOrCreateLocation(tx, req.LocationName, req.LocationAddress, *req.Latitude, *req.Longitude)
		if err != nil {
			return err
		}

		created = model.Post{
			Title:      req.Title,
			Content:    req.Content,
			MediaUrl:   req.MediaUrl,
			AuthorID:   author.Id,
			LocationID: location.Id,
		}
		if err := tx.Create(&created).Error; err != nil {
			return errors.Wrap(err, "fail to create post")
		}

		return attachTags(tx, created.Id, req.Tags)
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating post: "+err.Error())
		return
	}

	row, _, err := s.postRow(created.Id)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching post: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, row)
}

// UpdatePost handles PUT /posts/:id, author only. Supplying tags replaces the
// whole tag set.
func (s *Server) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post payload: "+err.Error())
		return
	}

	var post model.Post
	result := s.DB.Where("id = ?", id).Limit(1).Find(&post)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching post: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "Post not found")
		return
	}

	account, ok := s.principalAccount(c, model.AccountRoleUser)
	if !ok {
		return
	}
	if post.AuthorID != account.Id {
		errorJSON(c, http.StatusForbidden, "Not authorized to update this post")
		return
	}

	if req.Title != nil {
		post.Title = req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.MediaUrl != nil {
		post.MediaUrl = req.MediaUrl
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return errors.Wrap(err, "fail to update post")
		}
		if req.Tags != nil {
			if err := tx.Where("post_id = ?", post.Id).Delete(&model.PostTag{}).Error; err != nil {
				return errors.Wrap(err, "fail to clear post tags")
			}
			return attachTags(tx, post.Id, *req.Tags)
		}
		return nil
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating post: "+err.Error())
		return
	}

	row, _, err := s.postRow(post.Id)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching post: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeletePost handles DELETE /posts/:id, author or admin.
func (s *Server) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	var post model.Post
	result := s.DB.Where("id = ?", id).Limit(1).Find(&post)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching post: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "Post not found")
		return
	}

	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if principal.Role != middlewares.RoleAdmin {
		var account model.Account
		accountResult := s.DB.Where("cognito_id = ?", principal.Id).Limit(1).Find(&account)
		if accountResult.Error != nil {
			errorJSON(c, http.StatusInternalServerError, "Error fetching account: "+accountResult.Error.Error())
			return
		}
		if accountResult.RowsAffected == 0 || post.AuthorID != account.Id {
			errorJSON(c, http.StatusForbidden, "Not authorized to delete this post")
			return
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.PostFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.OfficialResponse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting post: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// CreateOfficialResponse handles POST /posts/:id/response. Only the owner
// that claimed the post's location can respond, and only once per post.
func (s *Server) CreateOfficialResponse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req officialResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid response payload: "+err.Error())
		return
	}

	var post model.Post
	result := s.DB.Preload("Location").Where("id = ?", id).Limit(1).Find(&post)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching post: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "Post not found")
		return
	}

	owner, ok := s.principalAccount(c, model.AccountRoleOwner)
	if !ok {
		return
	}
	if post.Location.ClaimedByOwnerID == nil || *post.Location.ClaimedByOwnerID != owner.Id {
		errorJSON(c, http.StatusForbidden, "Location not claimed by this owner")
		return
	}

	var existing model.OfficialResponse
	existingResult := s.DB.Where("post_id = ?", post.Id).Limit(1).Find(&existing)
	if existingResult.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching response: "+existingResult.Error.Error())
		return
	}
	if existingResult.RowsAffected > 0 {
		errorJSON(c, http.StatusBadRequest, "Post already has an official response")
		return
	}

	response := model.OfficialResponse{
		PostID:  post.Id,
		OwnerID: owner.Id,
		Content: req.Content,
	}
	if err := s.DB.Create(&response).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating response: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, response)
}

// postRow re-queries the full joined representation of a single post.
func (s *Server) postRow(id int32) (*query.PostRow, bool, error) {
	frag := query.Fragment{SQL: "p.id = ?", Args: []interface{}{id}}
	sql, args := query.BuildPostListSQL([]query.Fragment{frag}, query.Pagination{Limit: 1, Offset: 0})

	var rows []query.PostRow
	if err := s.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return &rows[0], true, nil
}

// attachTags find-or-creates each named tag and links it to the post.
// Duplicate names in the request collapse to one link.
func attachTags(tx *gorm.DB, postId int32, names []string) error {
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag model.Tag
		result := tx.Where("tag_name = ?", name).Limit(1).Find(&tag)
		if result.Error != nil {
			return errors.Wrap(result.Error, "fail to look up tag")
		}
		if result.RowsAffected == 0 {
			tag = model.Tag{TagName: name}
			if err := tx.Create(&tag).Error; err != nil {
				return errors.Wrap(err, "fail to create tag")
			}
		}

		if err := tx.Create(&model.PostTag{PostID: postId, TagID: tag.Id}).Error; err != nil {
			return errors.Wrap(err, "fail to link tag")
		}
	}
	return nil
}
