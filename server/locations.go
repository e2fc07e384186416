package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vibecheck/vibecheck/model"
	"github.com/vibecheck/vibecheck/server/query"
	"github.com/vibecheck/vibecheck/utils"
)

type verifyLocationRequest struct {
	Status model.LocationStatus `json:"status"`
}

// locationDetail is the GET /locations/:id shape: the aggregated location row
// plus its paginated posts.
type locationDetail struct {
	query.LocationRow
	Posts []query.PostRow `json:"posts"`
}

// ListLocations handles GET /locations.
func (s *Server) ListLocations(c *gin.Context) {
	params := queryParams(c)
	frags := query.BuildLocationPredicates(params)
	page := query.ParsePagination(params, query.DefaultLocationLimit)
	sql, args := query.BuildLocationListSQL(frags, page)

	rows := []query.LocationRow{}
	if err := s.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error retrieving locations: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetLocation handles GET /locations/:id, returning the location together
// with its posts (paginated through the same limit/offset parameters).
func (s *Server) GetLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid location id")
		return
	}

	frag := query.Fragment{SQL: "l.id = ?", Args: []interface{}{id}}
	sql, args := query.BuildLocationListSQL([]query.Fragment{frag}, query.Pagination{Limit: 1, Offset: 0})

	var locations []query.LocationRow
	if err := s.DB.Raw(sql, args...).Scan(&locations).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error retrieving location: "+err.Error())
		return
	}
	if len(locations) == 0 {
		errorJSON(c, http.StatusNotFound, "Location not found")
		return
	}

	params := queryParams(c)
	page := query.ParsePagination(params, query.DefaultPostLimit)
	postFrag := query.Fragment{SQL: "p.location_id = ?", Args: []interface{}{id}}
	postSQL, postArgs := query.BuildPostListSQL([]query.Fragment{postFrag}, page)

	posts := []query.PostRow{}
	if err := s.DB.Raw(postSQL, postArgs...).Scan(&posts).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error retrieving location: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, locationDetail{LocationRow: locations[0], Posts: posts})
}

// VerifyLocation handles PUT /locations/:id/verify. Status only moves
// forward: an archived location cannot come back as verified.
func (s *Server) VerifyLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid location id")
		return
	}

	var req verifyLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil || !utils.ContainsString(
		[]string{string(model.LocationStatusVerified), string(model.LocationStatusArchived)}, string(req.Status)) {
		errorJSON(c, http.StatusBadRequest, "Invalid status. Must be VERIFIED or ARCHIVED")
		return
	}

	var location model.Location
	result := s.DB.Where("id = ?", id).Limit(1).Find(&location)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error verifying location: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "Location not found")
		return
	}

	if location.Status == model.LocationStatusArchived && req.Status == model.LocationStatusVerified {
		errorJSON(c, http.StatusBadRequest, "Archived locations cannot be verified")
		return
	}

	location.Status = req.Status
	if err := s.DB.Save(&location).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error verifying location: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, location)
}

// DeleteLocation handles DELETE /locations/:id. Locations that still have
// posts cannot be deleted, only archived.
func (s *Server) DeleteLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid location id")
		return
	}

	var location model.Location
	result := s.DB.Where("id = ?", id).Limit(1).Find(&location)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting location: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		errorJSON(c, http.StatusNotFound, "Location not found")
		return
	}

	var postCount int64
	if err := s.DB.Model(&model.Post{}).Where("location_id = ?", id).Count(&postCount).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting location: "+err.Error())
		return
	}
	if postCount > 0 {
		errorJSON(c, http.StatusBadRequest, "Cannot delete location with posts. Archive it instead.")
		return
	}

	if err := s.DB.Delete(&location).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting location: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
