// Package server wires the VibeCheck REST surface: account, post, location,
// favorite and upload endpoints over the shared gorm handle.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vibecheck/vibecheck/file_store"
	"github.com/vibecheck/vibecheck/model"
	"github.com/vibecheck/vibecheck/server/middlewares"
	Flag "github.com/vibecheck/vibecheck/utils/flag"
	"gorm.io/gorm"
)

// Server bundles the dependencies every handler needs. The data-access
// handle is injected, never a package-level singleton, so tests can
// substitute their own.
type Server struct {
	DB        *gorm.DB
	FileStore *file_store.S3FileStore
}

func NewServer(db *gorm.DB, fileStore *file_store.S3FileStore) *Server {
	return &Server{DB: db, FileStore: fileStore}
}

// RegisterRoutes attaches every endpoint with its role gate.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/users", authn(middlewares.RoleUser))
	users.POST("", s.CreateUser)
	users.GET("/:cognitoId", s.GetUser)
	users.PUT("/:cognitoId", s.UpdateUser)
	users.POST("/:cognitoId/favorites/:postId", s.AddFavoritePost)
	users.DELETE("/:cognitoId/favorites/:postId", s.RemoveFavoritePost)

	owners := router.Group("/owners", authn(middlewares.RoleOwner))
	owners.POST("", s.CreateOwner)
	owners.GET("/:cognitoId", s.GetOwner)
	owners.PUT("/:cognitoId", s.UpdateOwner)

	router.GET("/locations", s.ListLocations)
	router.GET("/locations/:id", s.GetLocation)
	router.PUT("/locations/:id/verify", authn(middlewares.RoleOwner, middlewares.RoleAdmin), s.VerifyLocation)
	router.DELETE("/locations/:id", authn(middlewares.RoleAdmin), s.DeleteLocation)

	router.GET("/posts", s.ListPosts)
	router.GET("/posts/:id", s.GetPost)
	router.POST("/posts", authn(middlewares.RoleUser), s.CreatePost)
	router.PUT("/posts/:id", authn(middlewares.RoleUser), s.UpdatePost)
	router.DELETE("/posts/:id", authn(middlewares.RoleUser, middlewares.RoleAdmin), s.DeletePost)
	router.POST("/posts/:id/response", authn(middlewares.RoleOwner), s.CreateOfficialResponse)

	router.POST("/upload/presigned-url", authn(middlewares.RoleUser, middlewares.RoleOwner, middlewares.RoleAdmin), s.GeneratePresignedUrl)
}

// authn applies the role gate unless auth is bypassed for local development.
func authn(roles ...string) gin.HandlerFunc {
	if Flag.ByPassAuth {
		return func(c *gin.Context) { c.Next() }
	}
	return middlewares.RequireRoles(roles...)
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// queryParams flattens the request query string into the untyped parameter
// set the query builders accept.
func queryParams(c *gin.Context) map[string]string {
	params := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// principalAccount resolves the calling principal to its account row. On
// first authenticated access the row is provisioned lazily from the token
// claims.
func (s *Server) principalAccount(c *gin.Context, role model.AccountRole) (*model.Account, bool) {
	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var account model.Account
	result := s.DB.Where("cognito_id = ?", principal.Id).Limit(1).Find(&account)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error fetching account: "+result.Error.Error())
		return nil, false
	}
	if result.RowsAffected > 0 {
		return &account, true
	}

	username := principal.Username
	if username == "" {
		username = principal.Id
	}
	account = model.Account{
		CognitoId: principal.Id,
		Username:  username,
		Email:     principal.Email,
		Role:      role,
	}
	if err := s.DB.Create(&account).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error provisioning account: "+err.Error())
		return nil, false
	}
	return &account, true
}
