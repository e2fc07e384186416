package server

import (
	"github.com/gin-gonic/gin"
	"github.com/vibecheck/vibecheck/model"
)

// CreateOwner handles POST /owners.
func (s *Server) CreateOwner(c *gin.Context) {
	s.createAccount(c, model.AccountRoleOwner)
}

// GetOwner handles GET /owners/:cognitoId.
func (s *Server) GetOwner(c *gin.Context) {
	s.getAccount(c, model.AccountRoleOwner, "ClaimedLocations")
}

// UpdateOwner handles PUT /owners/:cognitoId, self only.
func (s *Server) UpdateOwner(c *gin.Context) {
	s.updateAccount(c, model.AccountRoleOwner)
}
